package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	//unique制約違反（open中シフトの二重開局など）
	ErrConflict = errors.New("conflict")
)

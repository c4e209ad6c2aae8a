package outbox

import (
	"context"
	"log"
	"time"

	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
)

// Publisher は外部ブローカーへの配信。実装はinfra/kafka。
type Publisher interface {
	Publish(ctx context.Context, ev model.OutboxEvent) error
}

// Poller はoutboxテーブルの未配信イベントを定期的に配信する。
// 配信成功でpublished_atを打ち、order.completedなら注文をsynced化する。
// 失敗はattemptsを増やして次のtickで再送する。
type Poller struct {
	tick      time.Duration
	batchSize int
	outbox    repo.OutboxRepository
	orders    repo.OrderRepository
	publisher Publisher
}

func NewPoller(outbox repo.OutboxRepository, orders repo.OrderRepository, publisher Publisher, tick time.Duration) *Poller {
	if tick <= 0 {
		tick = time.Second
	}
	return &Poller{
		tick:      tick,
		batchSize: 100,
		outbox:    outbox,
		orders:    orders,
		publisher: publisher,
	}
}

func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.ProcessOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// ProcessOnce は1バッチ分を配信する。テストからも直接呼ぶ。
func (p *Poller) ProcessOnce(ctx context.Context) {
	events, err := p.outbox.ListUnpublished(ctx, p.batchSize)
	if err != nil {
		log.Printf("outbox: failed to fetch events: %v", err)
		return
	}

	for _, ev := range events {
		if err := p.publisher.Publish(ctx, ev); err != nil {
			log.Printf("outbox: failed to publish event id=%s: %v", ev.ID, err)
			if err := p.outbox.RecordFailure(ctx, ev.ID); err != nil {
				log.Printf("outbox: failed to record failure id=%s: %v", ev.ID, err)
			}
			continue
		}

		if err := p.outbox.MarkPublished(ctx, ev.ID); err != nil {
			log.Printf("outbox: failed to mark published id=%s: %v", ev.ID, err)
			continue
		}

		if ev.EventType == model.EventTypeOrderCompleted {
			if err := p.orders.MarkSynced(ctx, ev.AggregateID); err != nil {
				log.Printf("outbox: failed to mark order synced id=%d: %v", ev.AggregateID, err)
			}
		}
	}

	if n, err := p.outbox.CountPending(ctx); err == nil {
		middleware.SetOutboxPending(n)
	}
}

// Pending は未配信件数（レジ画面の同期インジケータ用）。
func (p *Poller) Pending(ctx context.Context) (int64, error) {
	return p.outbox.CountPending(ctx)
}

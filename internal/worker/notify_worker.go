package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Abd-ElghanyMohammed/myflash/internal/config"
	"github.com/Abd-ElghanyMohammed/myflash/internal/infra"
	"github.com/Abd-ElghanyMohammed/myflash/internal/model"
	"github.com/Abd-ElghanyMohammed/myflash/internal/warehouse"
)

// maxSerialsShown caps how many serial numbers a message lists before
// collapsing the rest into a count.
const maxSerialsShown = 10

// NotifyWorker formats transfer and sale reports in Arabic and sends
// them over WhatsApp. Delivery goes through a circuit breaker so a
// dead Cloud API fast-fails instead of tying up the pool.
type NotifyWorker struct {
	client  *infra.WhatsAppClient
	breaker *infra.CircuitBreaker
	cfg     *config.Config
}

func NewNotifyWorker(client *infra.WhatsAppClient, breaker *infra.CircuitBreaker, cfg *config.Config) *NotifyWorker {
	return &NotifyWorker{client: client, breaker: breaker, cfg: cfg}
}

// Process handles one notification job from the queue. Delivery
// failures are logged and dropped; the job is not retried.
func (w *NotifyWorker) Process(ctx context.Context, job Job) {
	switch job.Type {
	case "transfer":
		if !w.cfg.NotifyTransfers {
			return
		}
		var t model.Transfer
		if err := json.Unmarshal(job.Payload, &t); err != nil {
			log.Error().Err(err).Msg("notify_worker: invalid transfer payload")
			return
		}
		w.deliver(ctx, w.cfg.WhatsAppRecipient, FormatTransferMessage(t))
	case "sale":
		if !w.cfg.NotifySales {
			return
		}
		var s model.Sale
		if err := json.Unmarshal(job.Payload, &s); err != nil {
			log.Error().Err(err).Msg("notify_worker: invalid sale payload")
			return
		}
		w.deliver(ctx, w.cfg.WhatsAppRecipient, FormatSaleMessage(s))
	case "test":
		var p testPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			log.Error().Err(err).Msg("notify_worker: invalid test payload")
			return
		}
		recipient := p.Recipient
		if recipient == "" {
			recipient = w.cfg.WhatsAppRecipient
		}
		w.deliver(ctx, recipient, FormatTestMessage())
	default:
		log.Warn().Str("type", job.Type).Msg("notify_worker: unknown job type")
	}
}

func (w *NotifyWorker) deliver(ctx context.Context, recipient, text string) {
	err := w.breaker.Execute(func() error {
		return w.client.Send(ctx, recipient, text)
	})
	if err != nil {
		log.Warn().Err(err).Str("recipient", recipient).Msg("notify_worker: delivery failed")
	}
}

// FormatTransferMessage renders the bilingual transfer report.
func FormatTransferMessage(t model.Transfer) string {
	var b strings.Builder
	b.WriteString("🔄 *تقرير تحويل جديد / New Transfer*\n\n")
	fmt.Fprintf(&b, "📅 التاريخ: %s\n", t.TransferredAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "⏰ الوقت: %s\n", t.TransferredAt.Format("15:04:05"))
	fmt.Fprintf(&b, "📦 عدد المنتجات: %d\n", t.ItemCount)
	fmt.Fprintf(&b, "🏭 من مستودع: %s\n", warehouse.DisplayName(string(t.FromWarehouse)))
	fmt.Fprintf(&b, "➡️ إلى مستودع: %s\n\n", warehouse.DisplayName(string(t.ToWarehouse)))
	b.WriteString("🔢 أرقام المسلسلات:\n")
	writeSerials(&b, t.Items)
	return b.String()
}

// FormatSaleMessage renders the bilingual sale report. Price and
// description lines appear only when set.
func FormatSaleMessage(s model.Sale) string {
	var b strings.Builder
	b.WriteString("💰 *تقرير بيع جديد / New Sale*\n\n")
	fmt.Fprintf(&b, "👤 العميل: %s\n", s.CustomerName)
	fmt.Fprintf(&b, "📅 التاريخ: %s\n", formatReleaseDate(s.ReleaseDate))
	fmt.Fprintf(&b, "📦 عدد المنتجات: %d\n", s.ItemCount)
	fmt.Fprintf(&b, "🏭 المستودع: %s\n", warehouse.DisplayName(string(s.Warehouse)))
	if s.Price.IsPositive() {
		fmt.Fprintf(&b, "💵 السعر: %s\n", s.Price.String())
	}
	if s.Description != "" {
		fmt.Fprintf(&b, "📝 الوصف: %s\n", s.Description)
	}
	b.WriteString("\n🔢 أرقام المسلسلات:\n")
	writeSerials(&b, s.Items)
	return b.String()
}

// FormatTestMessage renders the connectivity-check message.
func FormatTestMessage() string {
	return "🧪 *Test Notification*\n\n" +
		"This is a test message from your Product Management System.\n\n" +
		"✅ If you receive this, WhatsApp integration is working correctly!"
}

func writeSerials(b *strings.Builder, items model.ItemList) {
	if len(items) == 0 {
		return
	}
	shown := len(items)
	if shown > maxSerialsShown {
		shown = maxSerialsShown
	}
	for i := 0; i < shown; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(items[i].SerialNumber)
	}
	if rest := len(items) - shown; rest > 0 {
		fmt.Fprintf(b, "\n... و %d أخرى", rest)
	}
}

func formatReleaseDate(raw string) string {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("2006-01-02")
	}
	return raw
}

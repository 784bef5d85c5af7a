package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/pkg/logger"
)

var _ stock.Notifier = (*KafkaNotifier)(nil)

// KafkaNotifier publica eventos de stock en un topic Kafka para los
// colaboradores (alertas de reorden, refresco de UI). Fire-and-forget:
// se invoca después del commit y un fallo de publicación solo se loguea,
// jamás revierte la mutación.
type KafkaNotifier struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaNotifier construye el notificador con los brokers y topic dados.
func NewKafkaNotifier(brokers []string, topic string, log *logger.Logger) *KafkaNotifier {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		WriteTimeout: 5 * time.Second,
	}
	return &KafkaNotifier{writer: writer, log: log}
}

// Notify publica el evento. El contexto del request puede ya estar cancelado
// (el commit ocurrió antes), así que se usa un timeout propio.
func (n *KafkaNotifier) Notify(ctx context.Context, ev stock.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		n.log.Error().Err(err).Str("entry_id", ev.EntryID).Msg("serializar evento de stock")
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	msg := kafka.Message{
		Key:   []byte(ev.ItemID),
		Value: payload,
		Time:  ev.OccurredAt,
	}
	if err := n.writer.WriteMessages(pubCtx, msg); err != nil {
		n.log.Error().Err(err).
			Str("entry_id", ev.EntryID).
			Str("item_id", ev.ItemID).
			Msg("publicar evento de stock")
		return
	}
	n.log.Debug().
		Str("entry_id", ev.EntryID).
		Str("item_id", ev.ItemID).
		Str("kind", ev.Kind).
		Msg("evento de stock publicado")
}

// Close cierra el writer (al apagar la aplicación).
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

package notify

import (
	"context"

	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/internal/application/stock"
	"github.com/Derrick-Oduro/IT-SUPPORT-SYSTEM-sub000/pkg/logger"
)

var _ stock.Notifier = (*LogNotifier)(nil)

// LogNotifier registra los eventos de stock en el log estructurado.
// Se usa cuando no hay brokers configurados (desarrollo, tests manuales).
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify escribe el evento en el log.
func (n *LogNotifier) Notify(_ context.Context, ev stock.Event) {
	n.log.Info().
		Str("entry_id", ev.EntryID).
		Str("item_id", ev.ItemID).
		Str("kind", ev.Kind).
		Str("quantity", ev.Quantity.String()).
		Str("new_quantity", ev.NewQuantity.String()).
		Str("actor_id", ev.ActorID).
		Msg("movimiento de stock")
}

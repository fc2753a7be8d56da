package inventory

import (
	"math"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

const (
	// DefaultWindowDays ventana de historial de ventas considerada para la proyección.
	DefaultWindowDays = 30

	// slowMoverDailyRate consumo diario asumido para productos sin ventas recientes
	// (0.1 unidades/día: proyección conservadora para inventario de baja rotación).
	slowMoverDailyRate = 0.1

	// UnboundedDays valor centinela: el stock no se agota en un horizonte útil.
	UnboundedDays = 999
)

// DaysUntilStockout proyecta en días enteros cuánto durará el stock actual al
// ritmo de consumo reciente (servicio de dominio, puro y determinista).
//
// sales debe contener solo eventos de venta del par (producto, bodega),
// ordenados ascendente por fecha y dentro de la ventana; now se inyecta
// siempre como parámetro, nunca se lee el reloj del sistema.
//
// Reglas:
//   - Sin historial: floor(stock / 0.1) si hay stock, 0 si no.
//   - Con historial: promedio diario = total vendido / días transcurridos,
//     con los días acotados a [1, windowDays]. El piso de 1 día evita la
//     división por cero cuando la venta más antigua coincide con now.
//   - Promedio no positivo: UnboundedDays si hay stock, 0 si no.
func DaysUntilStockout(sales []entity.InventoryChangeEvent, currentQuantity int64, now time.Time, windowDays int) int {
	if currentQuantity < 0 {
		currentQuantity = 0
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	if len(sales) == 0 {
		if currentQuantity > 0 {
			return int(math.Floor(float64(currentQuantity) / slowMoverDailyRate))
		}
		return 0
	}

	var totalSold int64
	for _, ev := range sales {
		change := ev.Change
		if change < 0 {
			change = -change
		}
		totalSold += change
	}

	days := int(math.Ceil(now.Sub(sales[0].CreatedAt).Hours() / 24))
	if days > windowDays {
		days = windowDays
	}
	if days < 1 {
		days = 1
	}

	averageDailySales := float64(totalSold) / float64(days)
	if averageDailySales <= 0 {
		if currentQuantity > 0 {
			return UnboundedDays
		}
		return 0
	}

	projected := int(math.Floor(float64(currentQuantity) / averageDailySales))
	if projected < 0 {
		return 0
	}
	return projected
}

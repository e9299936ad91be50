package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/victoriaparraf/Goyos-Secret/internal/domain/dashboard"
)

type DashboardRepository struct{ db *sqlx.DB }

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) ReservationsByPeriod(ctx context.Context, period string, from, to time.Time) ([]dashboard.PeriodCount, error) {
	// date_trunc の単位はプレースホルダにできないためホワイトリストで固定する
	switch period {
	case "day", "week":
	default:
		return nil, fmt.Errorf("不正な集計単位です: %s", period)
	}

	query := fmt.Sprintf(`SELECT date_trunc('%s', start_time) AS period, COUNT(*) AS count
		FROM reservations
		WHERE start_time >= $1 AND start_time < $2 AND status <> 'CANCELLED'
		GROUP BY period ORDER BY period`, period)

	rows, err := r.db.QueryxContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("期間別予約数の集計に失敗: %w", err)
	}
	defer rows.Close()

	var result []dashboard.PeriodCount
	for rows.Next() {
		var pc dashboard.PeriodCount
		if err := rows.Scan(&pc.Period, &pc.Count); err != nil {
			return nil, fmt.Errorf("期間別予約数の読み取りに失敗: %w", err)
		}
		result = append(result, pc)
	}
	return result, rows.Err()
}

func (r *DashboardRepository) TopPreorderedDishes(ctx context.Context, limit int) ([]dashboard.DishCount, error) {
	query := `SELECT m.id, m.name, COUNT(*) AS count
		FROM reservation_dishes rd
		JOIN menu_items m ON m.id = rd.menu_item_id
		JOIN reservations r ON r.id = rd.reservation_id
		WHERE r.status <> 'CANCELLED'
		GROUP BY m.id, m.name
		ORDER BY count DESC, m.name
		LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("人気料理の集計に失敗: %w", err)
	}
	defer rows.Close()

	var result []dashboard.DishCount
	for rows.Next() {
		var dc dashboard.DishCount
		if err := rows.Scan(&dc.MenuItemID, &dc.Name, &dc.Count); err != nil {
			return nil, fmt.Errorf("人気料理の読み取りに失敗: %w", err)
		}
		result = append(result, dc)
	}
	return result, rows.Err()
}

func (r *DashboardRepository) OccupancyByRestaurant(ctx context.Context, at time.Time) ([]dashboard.Occupancy, error) {
	query := `SELECT rest.id, rest.name,
		COUNT(DISTINCT t.id) AS table_count,
		COUNT(DISTINCT res.table_id) AS reserved_tables
		FROM restaurants rest
		LEFT JOIN tables t ON t.restaurant_id = rest.id
		LEFT JOIN reservations res ON res.table_id = t.id
			AND res.status IN ('PENDING', 'CONFIRMED')
			AND res.start_time <= $1 AND res.end_time > $1
		GROUP BY rest.id, rest.name
		ORDER BY rest.name`

	rows, err := r.db.QueryxContext(ctx, query, at)
	if err != nil {
		return nil, fmt.Errorf("稼働率の集計に失敗: %w", err)
	}
	defer rows.Close()

	var result []dashboard.Occupancy
	for rows.Next() {
		var oc dashboard.Occupancy
		if err := rows.Scan(&oc.RestaurantID, &oc.RestaurantName, &oc.TableCount, &oc.ReservedTables); err != nil {
			return nil, fmt.Errorf("稼働率の読み取りに失敗: %w", err)
		}
		if oc.TableCount > 0 {
			oc.Percentage = float64(oc.ReservedTables) / float64(oc.TableCount) * 100
		}
		result = append(result, oc)
	}
	return result, rows.Err()
}

var _ dashboard.Repository = (*DashboardRepository)(nil)

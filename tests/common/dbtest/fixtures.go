//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// TestPassword is the plain text behind testPasswordHash.
const TestPassword = "password123"

const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

// Reference data ids, stable across ResetDB.
var (
	FloorOneID = uuid.MustParse("0b7a4c8e-0000-4000-8000-000000000001")

	RoomTypeStandardID = uuid.MustParse("5d1e0f7a-0000-4000-8000-000000000001")
	RoomTypeDeluxeID   = uuid.MustParse("5d1e0f7a-0000-4000-8000-000000000002")

	Room101ID = uuid.MustParse("7c2b9e41-0000-4000-8000-000000000101")
	Room102ID = uuid.MustParse("7c2b9e41-0000-4000-8000-000000000102")
	Room201ID = uuid.MustParse("7c2b9e41-0000-4000-8000-000000000201")
	// Room202ID is under maintenance.
	Room202ID = uuid.MustParse("7c2b9e41-0000-4000-8000-000000000202")

	ServiceBreakfastID = uuid.MustParse("9e4f3a10-0000-4000-8000-000000000001")
	ServicePickupID    = uuid.MustParse("9e4f3a10-0000-4000-8000-000000000002")
	ServiceSpaID       = uuid.MustParse("9e4f3a10-0000-4000-8000-000000000003")
)

const (
	StandardNightlyPrice int64 = 600_000
	DeluxeNightlyPrice   int64 = 900_000
	BreakfastPrice       int64 = 150_000
	PickupPrice          int64 = 300_000
)

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) WHERE is_active = true DO NOTHING`,
		userID, email, testPasswordHash, "Test "+role, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active = true", email).Scan(&userID)
	}

	return userID
}

func DeactivateUser(t *testing.T, db DBLike, email string) {
	t.Helper()
	_, err := db.Exec(context.Background(), "UPDATE users SET is_active = false WHERE email = $1", email)
	require.NoError(t, err)
}

// inserts the hotel catalog and discount codes used by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO floors (id, name, level) VALUES ($1, 'Ground', 1)
		ON CONFLICT (level) DO NOTHING;
	`, FloorOneID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO room_types (id, name, description, nightly_price, capacity, max_adults, max_children) VALUES
		    ($1, 'Standard', 'Queen bed, city view', $3, 2, 2, 1),
		    ($2, 'Deluxe', 'Two double beds, balcony', $4, 4, 3, 2)
		ON CONFLICT (name) DO NOTHING;
	`, RoomTypeStandardID, RoomTypeDeluxeID, StandardNightlyPrice, DeluxeNightlyPrice)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO rooms (id, number, floor_id, room_type_id, status) VALUES
		    ($1, '101', $5, $6, 'available'),
		    ($2, '102', $5, $7, 'available'),
		    ($3, '201', $5, $7, 'available'),
		    ($4, '202', $5, $7, 'maintenance')
		ON CONFLICT (number) DO NOTHING;
	`, Room101ID, Room102ID, Room201ID, Room202ID, FloorOneID, RoomTypeStandardID, RoomTypeDeluxeID)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO services (id, name, description, unit_price, is_active) VALUES
		    ($1, 'Breakfast', 'Buffet breakfast per guest', $4, true),
		    ($2, 'Airport pickup', 'One-way transfer', $5, true),
		    ($3, 'Spa', 'Closed for renovation', 500000, false)
		ON CONFLICT (name) DO NOTHING;
	`, ServiceBreakfastID, ServicePickupID, ServiceSpaID, BreakfastPrice, PickupPrice)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO discount_codes (code, description, discount_type, discount_value, min_order_amount,
		                            max_discount_amount, valid_from, valid_until, usage_limit, used_count, is_active) VALUES
		    ('SUMMER10', '10% off orders from 1,000,000', 'percentage', 10, 1000000, 500000, NULL, NULL, NULL, 0, true),
		    ('FLAT200K', '200,000 off', 'fixed', 200000, 0, NULL, NULL, NULL, NULL, 0, true),
		    ('ONCEONLY', 'Single use', 'fixed', 100000, 0, NULL, NULL, NULL, 1, 0, true),
		    ('EXPIRED5', 'Ended promotion', 'percentage', 5, 0, NULL, NULL, NOW() - INTERVAL '1 day', NULL, 0, true),
		    ('DISABLED', 'Switched off', 'fixed', 50000, 0, NULL, NULL, NULL, NULL, 0, false)
		ON CONFLICT (code) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}

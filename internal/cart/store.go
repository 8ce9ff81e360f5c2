package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/noah-isme/backend-food/internal/common"
	dbgen "github.com/noah-isme/backend-food/internal/db/gen"
)

// Querier is the subset of generated queries the cart store needs.
type Querier interface {
	ListCartLines(ctx context.Context, userID pgtype.UUID) ([]dbgen.ListCartLinesRow, error)
	DeleteCartItems(ctx context.Context, arg dbgen.DeleteCartItemsParams) (int64, error)
}

// Store reads and clears a customer's cart.
type Store struct {
	Q Querier
}

// Lines returns the customer's cart in insertion order.
func (s *Store) Lines(ctx context.Context, userID uuid.UUID) ([]Line, error) {
	if s == nil || s.Q == nil {
		return nil, errors.New("cart store not configured")
	}
	rows, err := s.Q.ListCartLines(ctx, common.PGUUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		line := Line{
			ID:       uuid.UUID(row.ID.Bytes),
			FoodID:   uuid.UUID(row.FoodID.Bytes),
			Quantity: row.Quantity,
			Note:     row.Note,
			StoreID:  uuid.UUID(row.StoreID.Bytes),
		}
		if row.SizeOptionID.Valid {
			opt := uuid.UUID(row.SizeOptionID.Bytes)
			line.SizeOptionID = &opt
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Clear deletes the given lines using q, which is normally the querier of an
// open transaction. It returns the number of deleted lines.
func (s *Store) Clear(ctx context.Context, q Querier, userID uuid.UUID, lineIDs []uuid.UUID) (int64, error) {
	if len(lineIDs) == 0 {
		return 0, nil
	}
	ids := make([]pgtype.UUID, 0, len(lineIDs))
	for _, id := range lineIDs {
		ids = append(ids, common.PGUUID(id))
	}
	n, err := q.DeleteCartItems(ctx, dbgen.DeleteCartItemsParams{UserID: common.PGUUID(userID), Ids: ids})
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return n, nil
}

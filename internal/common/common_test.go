package common

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorMapsAppError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, NotFound("order not found", errors.New("no rows")).WithDetails(map[string]any{"id": "x"}))
	require.Equal(t, http.StatusNotFound, rr.Code)
	var body struct {
		Error ErrorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, "NOT_FOUND", body.Error.Code)
	require.Equal(t, "order not found", body.Error.Message)
}

func TestWriteErrorHidesUnexpected(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("pq: connection reset"))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotContains(t, rr.Body.String(), "connection reset")
}

func TestIdentityRoundTrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{UserID: "u1", Role: RoleStore})
	id, ok := IdentityFrom(ctx)
	require.True(t, ok)
	require.Equal(t, RoleStore, id.Role)
	uid, ok := UserID(ctx)
	require.True(t, ok)
	require.Equal(t, "u1", uid)

	_, ok = UserID(context.Background())
	require.False(t, ok)
}

func TestValidateStructReportsJSONNames(t *testing.T) {
	type payload struct {
		ReceiverName string `json:"receiver_name" validate:"required"`
		Quantity     int    `json:"quantity" validate:"gte=1"`
	}
	err := ValidateStruct(payload{})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
	details := appErr.Details.(map[string]any)["fields"].(map[string]string)
	require.Equal(t, "required", details["receiver_name"])
	require.Equal(t, "gte", details["quantity"])
}

func TestUUIDHelpers(t *testing.T) {
	raw := uuid.New()
	id, err := ParseUUID(raw.String())
	require.NoError(t, err)
	require.Equal(t, raw.String(), UUIDString(id))
	require.True(t, UUIDEqual(id, PGUUID(raw)))
	require.Nil(t, NullableUUID(pgtype.UUID{}))

	_, err = ParseUUID("nope")
	require.Error(t, err)
}

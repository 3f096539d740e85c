package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantReason: "invalidInput",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("%w: gameweek gw-404", usecase.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantReason: "notFound",
		},
		{
			name:       "unauthorized",
			err:        fmt.Errorf("%w: missing token", usecase.ErrUnauthorized),
			wantStatus: http.StatusUnauthorized,
			wantReason: "unauthorized",
		},
		{
			name:       "forbidden",
			err:        fmt.Errorf("%w: admin access required", usecase.ErrForbidden),
			wantStatus: http.StatusForbidden,
			wantReason: "forbidden",
		},
		{
			name:       "dependency unavailable",
			err:        fmt.Errorf("%w: feed down", usecase.ErrDependencyUnavailable),
			wantStatus: http.StatusServiceUnavailable,
			wantReason: "dependencyUnavailable",
		},
		{
			name:       "deadline rejection",
			err:        fmt.Errorf("save pick: %w", fantasy.ErrDeadlinePassed),
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: fantasy.ReasonDeadlinePassed,
		},
		{
			name:       "budget rejection",
			err:        fmt.Errorf("save pick: %w", fantasy.ErrBudgetExceeded),
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: fantasy.ReasonBudgetExceeded,
		},
		{
			name:       "unknown player rejection",
			err:        fmt.Errorf("save pick: %w", fantasy.ErrUnknownPlayer),
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: fantasy.ReasonUnknownPlayer,
		},
		{
			name:       "unmapped error",
			err:        errors.New("driver crashed"),
			wantStatus: http.StatusInternalServerError,
			wantReason: "internalError",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := mapError(context.Background(), tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("status: got=%d want=%d", mapped.HTTPStatus, tc.wantStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("reason: got=%s want=%s", mapped.Reason, tc.wantReason)
			}
		})
	}
}

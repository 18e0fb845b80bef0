package handler

import (
	"time"

	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// parseWindow reads the start/end query parameters as calendar dates.
// The end date is inclusive: the window extends to the last instant of
// that day.
func parseWindow(c *gin.Context) (finance.DateRange, error) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		return finance.DateRange{}, shared.NewDomainError("INVALID_DATE_RANGE", "Start and end dates are required")
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return finance.DateRange{}, shared.NewDomainError("INVALID_DATE_RANGE", "Start date must be in YYYY-MM-DD format")
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return finance.DateRange{}, shared.NewDomainError("INVALID_DATE_RANGE", "End date must be in YYYY-MM-DD format")
	}

	window := finance.DateRange{
		Start: start,
		End:   end.AddDate(0, 0, 1).Add(-time.Second),
	}
	if err := window.Validate(); err != nil {
		return finance.DateRange{}, err
	}
	return window, nil
}

// parseOptionalUUID reads a UUID query parameter, returning nil when absent.
func parseOptionalUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", name+" must be a valid UUID")
	}
	return &id, nil
}

// parseUUIDParam reads a UUID path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, shared.NewDomainError("INVALID_INPUT", name+" must be a valid UUID")
	}
	return id, nil
}

// parseDecimalQuery reads a decimal query parameter, returning the fallback
// when absent.
func parseDecimalQuery(c *gin.Context, name string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", name+" must be a decimal number")
	}
	return value, nil
}

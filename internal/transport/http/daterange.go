package http

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	apierrors "leadpulse/internal/errors"
	apiv1 "leadpulse/pkg/contracts/api/v1"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// parseDateRange reads the optional start/end query parameters. The end date
// is inclusive: a bound of 2025-06-30 covers the whole day.
func parseDateRange(r *http.Request) (start, end *time.Time, apiErr *apierrors.APIError) {
	req := apiv1.DateRangeRequest{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}

	if err := validate.Struct(req); err != nil {
		return nil, nil, apierrors.ErrValidation("date_range", "dates must be formatted as YYYY-MM-DD")
	}

	if req.Start != "" {
		t, err := time.Parse(dateLayout, req.Start)
		if err != nil {
			return nil, nil, apierrors.ErrValidation("start", "start must be formatted as YYYY-MM-DD")
		}
		start = &t
	}
	if req.End != "" {
		t, err := time.Parse(dateLayout, req.End)
		if err != nil {
			return nil, nil, apierrors.ErrValidation("end", "end must be formatted as YYYY-MM-DD")
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		end = &t
	}

	if start != nil && end != nil && start.After(*end) {
		return nil, nil, apierrors.ErrValidation("date_range", "start must not be after end")
	}

	return start, end, nil
}

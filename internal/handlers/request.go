package handlers

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// Query parameter names for a selection.
const (
	ParamCity         = "city"
	ParamCustomerType = "customer_type"
	ParamGender       = "gender"
	ParamStart        = "start"
	ParamEnd          = "end"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SelectionInput is a selection as sent by a client. A nil list means "every
// value"; a non-nil empty list selects nothing. Empty dates fall back to the
// dataset's range.
type SelectionInput struct {
	Cities        []string `json:"cities" validate:"omitempty,max=64,dive,max=128"`
	CustomerTypes []string `json:"customerTypes" validate:"omitempty,max=64,dive,max=128"`
	Genders       []string `json:"genders" validate:"omitempty,max=64,dive,max=128"`
	Start         string   `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End           string   `json:"end" validate:"omitempty,datetime=2006-01-02"`
}

// SelectionFromQuery reads city, customer_type, gender, start and end. A
// repeated parameter may also carry comma-separated values.
func SelectionFromQuery(q url.Values) SelectionInput {
	return SelectionInput{
		Cities:        queryList(q, ParamCity),
		CustomerTypes: queryList(q, ParamCustomerType),
		Genders:       queryList(q, ParamGender),
		Start:         strings.TrimSpace(q.Get(ParamStart)),
		End:           strings.TrimSpace(q.Get(ParamEnd)),
	}
}

func queryList(q url.Values, key string) []string {
	raw, ok := q[key]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Resolve validates in and fills unset parts from opts.
func (in SelectionInput) Resolve(opts models.FilterOptions) (models.Selection, error) {
	if err := validate.Struct(in); err != nil {
		return models.Selection{}, errors.ValidationWrap(err, "Invalid filter selection").WithDetails(describe(err))
	}

	sel := models.Selection{
		Cities:        orDefault(in.Cities, opts.Cities),
		CustomerTypes: orDefault(in.CustomerTypes, opts.CustomerTypes),
		Genders:       orDefault(in.Genders, opts.Genders),
		Start:         opts.MinDate,
		End:           opts.MaxDate,
	}

	var err error
	if in.Start != "" {
		if sel.Start, err = time.Parse(models.DateLayout, in.Start); err != nil {
			return models.Selection{}, errors.ValidationWrap(err, "Invalid start date")
		}
	}
	if in.End != "" {
		if sel.End, err = time.Parse(models.DateLayout, in.End); err != nil {
			return models.Selection{}, errors.ValidationWrap(err, "Invalid end date")
		}
	}
	if sel.Start.After(sel.End) {
		return models.Selection{}, errors.Validation("Start date must not be after end date").
			WithDetails(fmt.Sprintf("start=%s end=%s", sel.Start.Format(models.DateLayout), sel.End.Format(models.DateLayout)))
	}

	return sel, nil
}

func orDefault(values, all []string) []string {
	if values == nil {
		return slices.Clone(all)
	}
	return values
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

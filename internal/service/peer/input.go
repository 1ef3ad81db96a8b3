package peer

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/mindcure-backend/internal/domain"
)

const (
	MaxInterests      = 10
	MaxInterestLength = 50
)

// JoinInput holds the topics a caller wants to talk about.
type JoinInput struct {
	Interests []string
}

// Validate checks the interest list.
func (i JoinInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Interests) > MaxInterests {
		errs = append(errs, domain.FieldError{
			Field:   "interests",
			Message: fmt.Sprintf("at most %d interests allowed", MaxInterests),
		})
	}
	for idx, s := range i.Interests {
		if len(strings.TrimSpace(s)) > MaxInterestLength {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("interests[%d]", idx),
				Message: fmt.Sprintf("must be at most %d characters", MaxInterestLength),
			})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// normalized returns trimmed, lower-cased, de-duplicated interests.
func (i JoinInput) normalized() []string {
	out := make([]string, 0, len(i.Interests))
	seen := make(map[string]struct{}, len(i.Interests))
	for _, s := range i.Interests {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

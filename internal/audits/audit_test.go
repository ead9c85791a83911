package audits

import (
	"errors"
	"testing"
	"time"
)

func TestReviewable(t *testing.T) {
	t.Run("unreviewed audit accepts a review", func(t *testing.T) {
		a := &Audit{Approved: true}
		if err := reviewable(a); err != nil {
			t.Errorf("reviewable = %v, want nil", err)
		}
	})

	t.Run("reviewed audit rejects a second review", func(t *testing.T) {
		reviewedAt := time.Now()
		reviewer := "auditor"
		a := &Audit{
			Approved:   true,
			ReviewedBy: &reviewer,
			ReviewedAt: &reviewedAt,
		}

		err := reviewable(a)
		if !errors.Is(err, ErrAlreadyReviewed) {
			t.Errorf("reviewable = %v, want ErrAlreadyReviewed", err)
		}
	})
}

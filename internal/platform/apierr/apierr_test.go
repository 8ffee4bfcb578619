package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromUnwrapsWrappedError(t *testing.T) {
	base := NotFound("There is no company with code %q", "ibm")
	wrapped := fmt.Errorf("get company: %w", base)

	got := From(wrapped)
	if got.Status != http.StatusNotFound || got.Code != CodeNotFound {
		t.Fatalf("unexpected error: %+v", got)
	}
	if got.Error() != `There is no company with code "ibm"` {
		t.Fatalf("unexpected message: %q", got.Error())
	}
}

func TestFromDefaultsToInternal(t *testing.T) {
	got := From(errors.New("boom"))
	if got.Status != http.StatusInternalServerError || got.Code != CodeInternal {
		t.Fatalf("unexpected error: %+v", got)
	}
	if From(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

package endpoint

import (
	"reflect"
	"testing"
)

func TestNewRegistry_DropsBlankEntries(t *testing.T) {
	r := NewRegistry([]string{"https://a", "", "  ", "https://b"})

	v := r.View()
	want := []string{"https://a", "https://b"}
	if !reflect.DeepEqual(v.Endpoints, want) {
		t.Errorf("expected %v, got %v", want, v.Endpoints)
	}
	if v.Primary != 0 {
		t.Errorf("expected primary 0, got %d", v.Primary)
	}
}

func TestReplace_OverridesList(t *testing.T) {
	r := NewRegistry([]string{"https://a"})
	r.Promote(r.View().Gen, 0)

	r.Replace([]string{"https://x", "https://y"})

	v := r.View()
	if !reflect.DeepEqual(v.Endpoints, []string{"https://x", "https://y"}) {
		t.Errorf("unexpected list: %v", v.Endpoints)
	}
	if v.Primary != 0 || r.FailStreak() != 0 {
		t.Errorf("expected routing state reset, got primary=%d streak=%d", v.Primary, r.FailStreak())
	}
}

func TestReplace_EmptyRestoresDefaults(t *testing.T) {
	r := NewRegistry([]string{"https://a", "https://b"})
	r.Replace([]string{"https://x"})

	r.Replace(nil)

	v := r.View()
	if !reflect.DeepEqual(v.Endpoints, []string{"https://a", "https://b"}) {
		t.Errorf("expected defaults restored, got %v", v.Endpoints)
	}
}

func TestPromote_SetsPrimaryAndClearsStreak(t *testing.T) {
	r := NewRegistry([]string{"https://a", "https://b", "https://c"})
	v := r.View()
	r.RoundFailed(v.Gen)

	r.Promote(v.Gen, 2)

	if got := r.View().Primary; got != 2 {
		t.Errorf("expected primary 2, got %d", got)
	}
	if r.FailStreak() != 0 {
		t.Errorf("expected streak reset, got %d", r.FailStreak())
	}
}

func TestRoundFailed_DemotesAtThreshold(t *testing.T) {
	r := NewRegistry([]string{"https://a", "https://b"})

	r.RoundFailed(r.View().Gen)
	if r.View().Primary != 0 {
		t.Errorf("primary must not move on first failed round")
	}
	if r.FailStreak() != 1 {
		t.Errorf("expected streak 1, got %d", r.FailStreak())
	}

	r.RoundFailed(r.View().Gen)
	v := r.View()
	if v.Primary != 1 {
		t.Errorf("expected primary advanced to 1, got %d", v.Primary)
	}
	if r.FailStreak() != 0 {
		t.Errorf("expected streak reset after demotion, got %d", r.FailStreak())
	}
}

func TestRoundFailed_WrapsPrimary(t *testing.T) {
	r := NewRegistry([]string{"https://a", "https://b"})
	r.Promote(r.View().Gen, 1)

	r.RoundFailed(r.View().Gen)
	r.RoundFailed(r.View().Gen)

	if got := r.View().Primary; got != 0 {
		t.Errorf("expected primary wrapped to 0, got %d", got)
	}
}

func TestStaleFeedbackIgnored(t *testing.T) {
	r := NewRegistry([]string{"https://a", "https://b", "https://c"})
	stale := r.View()

	r.Replace([]string{"https://x", "https://y"})

	r.Promote(stale.Gen, 2)
	r.RoundFailed(stale.Gen)

	v := r.View()
	if v.Primary != 0 {
		t.Errorf("stale promote applied: primary=%d", v.Primary)
	}
	if r.FailStreak() != 0 {
		t.Errorf("stale round failure applied: streak=%d", r.FailStreak())
	}
}

func TestRoundFailed_EmptyListNoop(t *testing.T) {
	r := NewRegistry(nil)
	r.RoundFailed(r.View().Gen) // must not panic
	if r.FailStreak() != 0 {
		t.Errorf("expected streak 0 on empty list, got %d", r.FailStreak())
	}
}

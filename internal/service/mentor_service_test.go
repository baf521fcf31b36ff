package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func newMentorFixture(t *testing.T) (*MentorService, *AuthService, *recordingNotifier) {
	t.Helper()

	auth, _ := newTestServices(t)
	notifier := &recordingNotifier{}
	return NewMentorService(auth, notifier), auth, notifier
}

func TestRequestMentorPicksLeastLoaded(t *testing.T) {
	mentors, auth, _ := newMentorFixture(t)
	ctx := context.Background()

	// m2 registers alone and takes three requests before m1 exists
	registerAndLogin(t, auth, "mentor-two", "m2")
	if err := mentors.RegisterMentor("m2"); err != nil {
		t.Fatalf("RegisterMentor(m2) error = %v", err)
	}
	for i := 0; i < 3; i++ {
		id := fmt.Sprintf("loader-%d", i)
		registerAndLogin(t, auth, id, id)
		if _, err := mentors.RequestMentor(ctx, id); err != nil {
			t.Fatalf("RequestMentor(%s) error = %v", id, err)
		}
	}

	registerAndLogin(t, auth, "mentor-one", "m1")
	if err := mentors.RegisterMentor("m1"); err != nil {
		t.Fatalf("RegisterMentor(m1) error = %v", err)
	}

	registerAndLogin(t, auth, "seeker", "seeker")
	assignment, err := mentors.RequestMentor(ctx, "seeker")
	if err != nil {
		t.Fatalf("RequestMentor(seeker) error = %v", err)
	}
	if assignment.MentorID != "m1" {
		t.Errorf("assigned to %s (m1 has 0 pending, m2 has 3), want m1", assignment.MentorID)
	}
	if got := mentors.PendingCount("m1"); got != 1 {
		t.Errorf("PendingCount(m1) = %d, want 1", got)
	}
}

func TestRequestMentorTieBreakIsRegistrationOrder(t *testing.T) {
	mentors, auth, _ := newMentorFixture(t)
	ctx := context.Background()

	registerAndLogin(t, auth, "mentor-b", "mb")
	registerAndLogin(t, auth, "mentor-a", "ma")
	// mb registers first; with equal (empty) queues it must win the tie
	if err := mentors.RegisterMentor("mb"); err != nil {
		t.Fatalf("RegisterMentor(mb) error = %v", err)
	}
	if err := mentors.RegisterMentor("ma"); err != nil {
		t.Fatalf("RegisterMentor(ma) error = %v", err)
	}

	registerAndLogin(t, auth, "mentee", "mentee-1")
	assignment, err := mentors.RequestMentor(ctx, "mentee-1")
	if err != nil {
		t.Fatalf("RequestMentor() error = %v", err)
	}
	if assignment.MentorID != "mb" {
		t.Errorf("assigned to %s, want mb (registration order tie-break)", assignment.MentorID)
	}
}

func TestRequestMentorNoMentors(t *testing.T) {
	mentors, auth, _ := newMentorFixture(t)

	registerAndLogin(t, auth, "lonely", "lonely")
	if _, err := mentors.RequestMentor(context.Background(), "lonely"); !errors.Is(err, ErrNoMentorsAvailable) {
		t.Errorf("RequestMentor() error = %v, want ErrNoMentorsAvailable", err)
	}
}

func TestPairingIsPermanent(t *testing.T) {
	mentors, auth, _ := newMentorFixture(t)
	ctx := context.Background()

	registerAndLogin(t, auth, "the-mentor", "tm")
	registerAndLogin(t, auth, "the-mentee", "tme")
	if err := mentors.RegisterMentor("tm"); err != nil {
		t.Fatalf("RegisterMentor() error = %v", err)
	}
	if _, err := mentors.RequestMentor(ctx, "tme"); err != nil {
		t.Fatalf("RequestMentor() error = %v", err)
	}
	if err := mentors.AcceptMentee(ctx, "tm", "tme"); err != nil {
		t.Fatalf("AcceptMentee() error = %v", err)
	}

	queueBefore := mentors.PendingCount("tm")
	if _, err := mentors.RequestMentor(ctx, "tme"); !errors.Is(err, ErrAlreadyPaired) {
		t.Errorf("RequestMentor() after pairing error = %v, want ErrAlreadyPaired", err)
	}
	if mentors.PendingCount("tm") != queueBefore {
		t.Error("rejected request mutated the pending queue")
	}

	mentor, ok := mentors.PairedMentor("tme")
	if !ok || mentor != "tm" {
		t.Errorf("PairedMentor() = %q, %v; want tm, true", mentor, ok)
	}
}

func TestAcceptMenteeErrors(t *testing.T) {
	mentors, auth, _ := newMentorFixture(t)
	ctx := context.Background()

	registerAndLogin(t, auth, "not-a-mentor", "nam")
	if err := mentors.AcceptMentee(ctx, "nam", "whoever"); !errors.Is(err, ErrNotMentor) {
		t.Errorf("AcceptMentee() by non-mentor error = %v, want ErrNotMentor", err)
	}

	registerAndLogin(t, auth, "real-mentor", "rm")
	if err := mentors.RegisterMentor("rm"); err != nil {
		t.Fatalf("RegisterMentor() error = %v", err)
	}
	if err := mentors.AcceptMentee(ctx, "rm", "ghost"); !errors.Is(err, ErrNoPendingRequest) {
		t.Errorf("AcceptMentee() with no request error = %v, want ErrNoPendingRequest", err)
	}
}

func TestRegisterMentorIdempotent(t *testing.T) {
	mentors, auth, _ := newMentorFixture(t)

	registerAndLogin(t, auth, "twice", "tw")
	if err := mentors.RegisterMentor("tw"); err != nil {
		t.Fatalf("first RegisterMentor() error = %v", err)
	}
	if err := mentors.RegisterMentor("tw"); err != nil {
		t.Fatalf("second RegisterMentor() error = %v", err)
	}

	registerAndLogin(t, auth, "asker", "ask")
	if _, err := mentors.RequestMentor(context.Background(), "ask"); err != nil {
		t.Fatalf("RequestMentor() error = %v", err)
	}
	if got := mentors.PendingCount("tw"); got != 1 {
		t.Errorf("PendingCount() = %d, want 1 (duplicate registration must not duplicate the mentor)", got)
	}
}

func TestMentorNotificationsAreBestEffort(t *testing.T) {
	mentors, auth, notifier := newMentorFixture(t)
	notifier.fail = true
	ctx := context.Background()

	registerAndLogin(t, auth, "quiet-mentor", "qm")
	registerAndLogin(t, auth, "hopeful", "hp")
	if err := mentors.RegisterMentor("qm"); err != nil {
		t.Fatalf("RegisterMentor() error = %v", err)
	}

	// Delivery failure must not surface to the requester
	if _, err := mentors.RequestMentor(ctx, "hp"); err != nil {
		t.Errorf("RequestMentor() error = %v, want nil despite notifier failure", err)
	}
	if notifier.count() == 0 {
		t.Error("no notification attempt recorded")
	}
}

func TestMentorOperationsRequireAuth(t *testing.T) {
	mentors, _, _ := newMentorFixture(t)
	ctx := context.Background()

	if err := mentors.RegisterMentor("anon"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("RegisterMentor() error = %v, want ErrUnauthenticated", err)
	}
	if _, err := mentors.RequestMentor(ctx, "anon"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("RequestMentor() error = %v, want ErrUnauthenticated", err)
	}
	if err := mentors.AcceptMentee(ctx, "anon", "x"); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("AcceptMentee() error = %v, want ErrUnauthenticated", err)
	}
}

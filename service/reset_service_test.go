package service

import (
	"errors"
	"testing"
	"time"

	"daybook/model"
	"daybook/utils"
)

type fakeResetStore struct {
	data map[string][]byte
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{data: map[string][]byte{}}
}

func (s *fakeResetStore) SaveResetState(token string, state []byte, _ time.Duration) error {
	s.data[token] = state
	return nil
}

func (s *fakeResetStore) ResetState(token string) ([]byte, error) {
	return s.data[token], nil
}

func (s *fakeResetStore) ClearResetState(token string) error {
	delete(s.data, token)
	return nil
}

type fakeUserSource struct {
	user        *model.User
	updatedHash string
}

func (s *fakeUserSource) GetByUsername(username string) (*model.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, errors.New("record not found")
}

func (s *fakeUserSource) UpdatePassword(id uint64, hash string) error {
	if s.user == nil || s.user.ID != id {
		return errors.New("record not found")
	}
	s.updatedHash = hash
	return nil
}

func resetFixture() (*ResetService, *fakeUserSource) {
	users := &fakeUserSource{user: &model.User{
		ID:               42,
		Username:         "diarist",
		SecurityQuestion: "First pet's name?",
		SecurityAnswer:   "fluffy",
	}}
	return NewResetService(newFakeResetStore(), users), users
}

func TestResetFlowHappyPath(t *testing.T) {
	svc, users := resetFixture()
	token := "flow-token"

	question, err := svc.Start(token, "diarist")
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if question != "First pet's name?" {
		t.Fatalf("unexpected question %q", question)
	}

	// Answer matching ignores case and surrounding whitespace.
	if err := svc.Answer(token, "  FLUFFY "); err != nil {
		t.Fatalf("answer failed: %v", err)
	}

	if err := svc.Complete(token, "newpassword1"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if users.updatedHash == "" {
		t.Fatal("password was never updated")
	}
	if !utils.CheckPasswordHash("newpassword1", users.updatedHash) {
		t.Fatal("stored hash does not match the new password")
	}

	// State is cleared after completion; the token is dead.
	if err := svc.Complete(token, "another"); !errors.Is(err, ErrResetExpired) {
		t.Fatalf("expected ErrResetExpired after completion, got %v", err)
	}
}

func TestResetWrongAnswerKeepsChallengeStep(t *testing.T) {
	svc, _ := resetFixture()
	token := "flow-token"
	if _, err := svc.Start(token, "diarist"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if err := svc.Answer(token, "rex"); !errors.Is(err, ErrResetWrongAnswer) {
		t.Fatalf("expected ErrResetWrongAnswer, got %v", err)
	}

	// The question is still retrievable and the right answer still works.
	if q, err := svc.Question(token); err != nil || q == "" {
		t.Fatalf("question unavailable after wrong answer: %q %v", q, err)
	}
	if err := svc.Answer(token, "fluffy"); err != nil {
		t.Fatalf("correct answer rejected after a miss: %v", err)
	}
}

func TestResetCompleteWithoutVerification(t *testing.T) {
	svc, _ := resetFixture()
	token := "flow-token"
	if _, err := svc.Start(token, "diarist"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := svc.Complete(token, "sneaky"); !errors.Is(err, ErrResetExpired) {
		t.Fatalf("expected ErrResetExpired before verification, got %v", err)
	}
}

func TestResetStartErrors(t *testing.T) {
	svc, _ := resetFixture()
	if _, err := svc.Start("t", "nobody"); !errors.Is(err, ErrResetUserNotFound) {
		t.Fatalf("expected ErrResetUserNotFound, got %v", err)
	}

	noQuestion := &fakeUserSource{user: &model.User{ID: 7, Username: "bare"}}
	svc2 := NewResetService(newFakeResetStore(), noQuestion)
	if _, err := svc2.Start("t", "bare"); !errors.Is(err, ErrResetNoQuestion) {
		t.Fatalf("expected ErrResetNoQuestion, got %v", err)
	}
}

func TestResetUnknownTokenExpired(t *testing.T) {
	svc, _ := resetFixture()
	if err := svc.Answer("never-started", "fluffy"); !errors.Is(err, ErrResetExpired) {
		t.Fatalf("expected ErrResetExpired for unknown token, got %v", err)
	}
}

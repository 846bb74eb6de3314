package service

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"daybook/model"
	"daybook/utils"
)

// Reset flow steps. Absence of stored state means AwaitingIdentifier.
const (
	resetStepChallenge = "awaiting_challenge_answer"
	resetStepVerified  = "answer_verified"
)

const resetStateTTL = 15 * time.Minute

var (
	ErrResetUserNotFound = errors.New("username not found")
	// ErrResetNoQuestion leaks that the username exists without a
	// configured question. Kept as-is from the upstream behavior; a
	// hardening pass should merge it with ErrResetUserNotFound.
	ErrResetNoQuestion  = errors.New("no security question configured")
	ErrResetWrongAnswer = errors.New("security answer does not match")
	ErrResetExpired     = errors.New("reset session is missing or expired")
)

// resetStore persists flow state under a per-flow token with a TTL.
// *auth.SessionManager satisfies it.
type resetStore interface {
	SaveResetState(token string, state []byte, ttl time.Duration) error
	ResetState(token string) ([]byte, error)
	ClearResetState(token string) error
}

// resetUserSource is the slice of user persistence the flow needs.
// *dao.UserDAO satisfies it.
type resetUserSource interface {
	GetByUsername(username string) (*model.User, error)
	UpdatePassword(id uint64, hash string) error
}

type resetState struct {
	Step     string `json:"step"`
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Question string `json:"question"`
	Answer   string `json:"answer"` // stored lowercased + trimmed
}

// ResetService drives the security-question password-reset state machine:
// identify account, answer the challenge, set a new password. State lives
// server-side only and is cleared once the password changes.
type ResetService struct {
	store resetStore
	users resetUserSource
}

func NewResetService(store resetStore, users resetUserSource) *ResetService {
	return &ResetService{store: store, users: users}
}

// Start moves AwaitingIdentifier -> AwaitingChallengeAnswer when the
// username exists and has a security question, returning the question
// text. Otherwise the flow stays at step one with a distinct error.
func (s *ResetService) Start(token, username string) (string, error) {
	user, err := s.users.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return "", ErrResetUserNotFound
	}
	if user.SecurityQuestion == "" {
		return "", ErrResetNoQuestion
	}
	state := resetState{
		Step:     resetStepChallenge,
		UserID:   user.ID,
		Username: user.Username,
		Question: user.SecurityQuestion,
		Answer:   user.SecurityAnswer,
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	if err := s.store.SaveResetState(token, data, resetStateTTL); err != nil {
		return "", err
	}
	return user.SecurityQuestion, nil
}

// Answer checks the challenge answer (trimmed, case-insensitive). A match
// advances to AnswerVerified exactly once; a mismatch leaves the flow in
// AwaitingChallengeAnswer with the question preserved.
func (s *ResetService) Answer(token, answer string) error {
	state, err := s.load(token, resetStepChallenge)
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != state.Answer {
		return ErrResetWrongAnswer
	}
	state.Step = resetStepVerified
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.store.SaveResetState(token, data, resetStateTTL)
}

// Question re-reads the stored question so the challenge form can be
// re-rendered after a wrong answer.
func (s *ResetService) Question(token string) (string, error) {
	state, err := s.load(token, resetStepChallenge)
	if err != nil {
		return "", err
	}
	return state.Question, nil
}

// Complete sets the new password for a verified flow and invalidates the
// state. Missing or expired state is ErrResetExpired, which callers turn
// into a redirect to step one rather than a failure.
func (s *ResetService) Complete(token, newPassword string) error {
	state, err := s.load(token, resetStepVerified)
	if err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(state.UserID, hash); err != nil {
		return err
	}
	return s.store.ClearResetState(token)
}

func (s *ResetService) load(token, wantStep string) (*resetState, error) {
	data, err := s.store.ResetState(token)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrResetExpired
	}
	var state resetState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, ErrResetExpired
	}
	if state.Step != wantStep {
		return nil, ErrResetExpired
	}
	return &state, nil
}

package bar

import (
	"encoding/json"

	"happyhour-console/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

type EditState string

const (
	StateViewing EditState = "viewing"
	StateEditing EditState = "editing"
)

var (
	ErrNotEditing   = errs.New("no edit in progress")
	ErrDraftCorrupt = errs.New("edit session draft failed to fork")
)

// EditSession holds the two parallel copies of a Bar: the committed
// record as last loaded or persisted, and the draft being edited.
// Outside Editing the draft does not exist and cannot be read. The
// staged menu key references a selected-but-unsaved PDF in the object
// store; it lives and dies with the session.
type EditSession struct {
	committed     Bar
	draft         *Bar
	stagedMenuKey string
}

func NewEditSession(committed Bar) *EditSession {
	committed.Sanitize()
	return &EditSession{committed: committed}
}

func (s *EditSession) State() EditState {
	if s.draft != nil {
		return StateEditing
	}
	return StateViewing
}

// Committed is the only copy rendered while Viewing.
func (s *EditSession) Committed() Bar {
	return s.committed
}

// BeginEdit forks the draft from the committed copy. Calling it while
// already Editing keeps the current draft.
func (s *EditSession) BeginEdit() error {
	if s.draft != nil {
		return nil
	}
	draft, err := deepCopy(s.committed)
	if err != nil {
		return errs.Mark(err, ErrDraftCorrupt)
	}
	s.draft = &draft
	return nil
}

func (s *EditSession) Draft() (*Bar, error) {
	if s.draft == nil {
		return nil, ErrNotEditing
	}
	return s.draft, nil
}

// UpdateDraft applies an in-place mutation to the draft.
func (s *EditSession) UpdateDraft(mutate func(*Bar)) error {
	if s.draft == nil {
		return ErrNotEditing
	}
	mutate(s.draft)
	return nil
}

// ApplyAnalysis merges reconciled entries into the draft, forking one
// from the committed copy first when still Viewing. An empty entry list
// leaves the session untouched and does not enter edit mode; the
// returned bool reports whether anything changed.
func (s *EditSession) ApplyAnalysis(entries []HappyHourEntry) (bool, error) {
	if len(entries) == 0 {
		return false, nil
	}
	if err := s.BeginEdit(); err != nil {
		return false, err
	}
	s.draft.AppendHappyHours(entries)
	return true, nil
}

// StageMenu remembers the object-store key of the uploaded PDF until
// the session is saved or cancelled. A later upload replaces an
// earlier one.
func (s *EditSession) StageMenu(key string) {
	s.stagedMenuKey = key
}

func (s *EditSession) StagedMenuKey() string {
	return s.stagedMenuKey
}

// Commit moves draft to committed and returns to Viewing. Callers only
// invoke it after the record write succeeded; a failed save leaves the
// session exactly as it was.
func (s *EditSession) Commit() error {
	if s.draft == nil {
		return ErrNotEditing
	}
	s.committed = *s.draft
	s.draft = nil
	s.stagedMenuKey = ""
	return nil
}

// Cancel discards the draft and any selected-but-unsaved upload.
func (s *EditSession) Cancel() {
	s.draft = nil
	s.stagedMenuKey = ""
}

func deepCopy(src Bar) (Bar, error) {
	var dst Bar
	if err := copier.CopyWithOption(&dst, &src, copier.Option{DeepCopy: true}); err != nil {
		return Bar{}, err
	}
	dst.Sanitize()
	return dst, nil
}

// The session round-trips through the session store as JSON.

type sessionState struct {
	Committed     Bar    `json:"committed"`
	Draft         *Bar   `json:"draft,omitempty"`
	StagedMenuKey string `json:"staged_menu_key,omitempty"`
}

func (s *EditSession) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionState{
		Committed:     s.committed,
		Draft:         s.draft,
		StagedMenuKey: s.stagedMenuKey,
	})
}

func (s *EditSession) UnmarshalJSON(data []byte) error {
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return err
	}
	state.Committed.Sanitize()
	if state.Draft != nil {
		state.Draft.Sanitize()
	}
	s.committed = state.Committed
	s.draft = state.Draft
	s.stagedMenuKey = state.StagedMenuKey
	return nil
}

//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"happyhour-console/internal/domain/bar"
	reqdto "happyhour-console/internal/handler/dto/request"
	"happyhour-console/internal/pkg/clock"
	"happyhour-console/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BarCommandsSuite struct {
	suite.Suite
	ctx      context.Context
	log      *opLog
	uow      *stubUoW
	sessions *stubSessionStore
	menus    *stubMenuStore
	cmds     commands.BarCommands

	userID uuid.UUID
	barID  uuid.UUID
}

func TestBarCommandsSuite(t *testing.T) {
	suite.Run(t, new(BarCommandsSuite))
}

func (s *BarCommandsSuite) SetupTest() {
	s.ctx = context.Background()
	s.log = &opLog{}
	s.uow = newStubUoW(s.log)
	s.sessions = newStubSessionStore()
	s.menus = newStubMenuStore(s.log)
	clk := clock.NewMockClock(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	s.cmds = commands.NewBarCommands(s.uow, s.sessions, s.menus, clk)

	s.userID = uuid.New()
	s.barID = uuid.New()
	s.uow.records[s.barID] = &bar.Bar{
		ID:          s.barID,
		Name:        "The Green Mill",
		FullAddress: "4802 N Broadway, Chicago, IL",
		Address:     bar.Address{Neighborhood: "Uptown", City: "Chicago", State: "IL"},
		HappyHours: []bar.HappyHourEntry{
			{ID: uuid.New(), Name: "Jazz Hour", Days: []bar.Weekday{bar.Monday}, Drinks: []string{}, Deals: []bar.Deal{}},
		},
	}
}

func (s *BarCommandsSuite) storedSession() *bar.EditSession {
	session, err := s.sessions.Get(s.ctx, s.userID, s.barID)
	s.Require().NoError(err)
	return session
}

// seedEditingSession puts an active edit with a staged menu PDF into the
// session and object stores, bypassing the analyze flow.
func (s *BarCommandsSuite) seedEditingSession(stagedKey string) {
	session := bar.NewEditSession(*s.uow.records[s.barID])
	s.Require().NoError(session.BeginEdit())
	if stagedKey != "" {
		session.StageMenu(stagedKey)
		s.Require().NoError(s.menus.UploadStaging(s.ctx, stagedKey, []byte("%PDF-1.4")))
	}
	s.Require().NoError(s.sessions.Put(s.ctx, s.userID, s.barID, session))
}

func (s *BarCommandsSuite) TestBeginEditForksDraftFromRecord() {
	draft, err := s.cmds.BeginEdit(s.ctx, s.userID, s.barID)

	s.Require().NoError(err)
	s.Equal("The Green Mill", draft.Name)
	s.Len(draft.HappyHours, 1)

	session := s.storedSession()
	s.Require().NotNil(session)
	s.Equal(bar.StateEditing, session.State())
}

func (s *BarCommandsSuite) TestBeginEditUnknownBar() {
	_, err := s.cmds.BeginEdit(s.ctx, s.userID, uuid.New())

	s.ErrorIs(err, commands.ErrBarNotFound)
}

func (s *BarCommandsSuite) TestBeginEditKeepsExistingDraft() {
	_, err := s.cmds.BeginEdit(s.ctx, s.userID, s.barID)
	s.Require().NoError(err)

	renamed := "The Green Mill (renamed)"
	_, err = s.cmds.UpdateDraft(s.ctx, s.userID, s.barID, reqdto.UpdateBarDraftRequest{Name: &renamed})
	s.Require().NoError(err)

	draft, err := s.cmds.BeginEdit(s.ctx, s.userID, s.barID)

	s.Require().NoError(err)
	s.Equal(renamed, draft.Name)
}

func (s *BarCommandsSuite) TestUpdateDraftRequiresActiveEdit() {
	name := "anything"
	_, err := s.cmds.UpdateDraft(s.ctx, s.userID, s.barID, reqdto.UpdateBarDraftRequest{Name: &name})

	s.ErrorIs(err, commands.ErrNoActiveEdit)
}

func (s *BarCommandsSuite) TestUpdateDraftPatchesOnlyPresentFields() {
	_, err := s.cmds.BeginEdit(s.ctx, s.userID, s.barID)
	s.Require().NoError(err)

	city := "Evanston"
	draft, err := s.cmds.UpdateDraft(s.ctx, s.userID, s.barID, reqdto.UpdateBarDraftRequest{
		Address: &reqdto.AddressPatch{City: &city},
	})

	s.Require().NoError(err)
	s.Equal("Evanston", draft.Address.City)
	s.Equal("Uptown", draft.Address.Neighborhood)
	s.Equal("The Green Mill", draft.Name)
	s.Len(draft.HappyHours, 1)

	// the committed record is untouched until save
	s.Equal("Chicago", s.uow.records[s.barID].Address.City)
}

func (s *BarCommandsSuite) TestUpdateDraftReplacesEntryListAndAssignsIDs() {
	_, err := s.cmds.BeginEdit(s.ctx, s.userID, s.barID)
	s.Require().NoError(err)

	rows := []reqdto.HappyHourPayload{
		{Name: "", Days: []string{"fri"}, StartTime: "16:00", EndTime: "18:00"},
	}
	draft, err := s.cmds.UpdateDraft(s.ctx, s.userID, s.barID, reqdto.UpdateBarDraftRequest{HappyHours: &rows})

	s.Require().NoError(err)
	s.Require().Len(draft.HappyHours, 1)
	s.NotEqual(uuid.Nil, draft.HappyHours[0].ID)
	s.Equal(bar.DefaultEntryName, draft.HappyHours[0].Name)
	s.Equal([]bar.Weekday{bar.Friday}, draft.HappyHours[0].Days)
}

func (s *BarCommandsSuite) TestAddEntryAppendsEmptyRow() {
	_, err := s.cmds.BeginEdit(s.ctx, s.userID, s.barID)
	s.Require().NoError(err)

	draft, err := s.cmds.AddEntry(s.ctx, s.userID, s.barID)

	s.Require().NoError(err)
	s.Require().Len(draft.HappyHours, 2)
	s.Equal("Jazz Hour", draft.HappyHours[0].Name)
	s.Equal(bar.DefaultEntryName, draft.HappyHours[1].Name)
	s.NotEqual(uuid.Nil, draft.HappyHours[1].ID)
}

func (s *BarCommandsSuite) TestSaveCommitsDraft() {
	_, err := s.cmds.BeginEdit(s.ctx, s.userID, s.barID)
	s.Require().NoError(err)
	renamed := "The Green Mill (renamed)"
	_, err = s.cmds.UpdateDraft(s.ctx, s.userID, s.barID, reqdto.UpdateBarDraftRequest{Name: &renamed})
	s.Require().NoError(err)

	committed, err := s.cmds.Save(s.ctx, s.userID, s.barID)

	s.Require().NoError(err)
	s.Equal(renamed, committed.Name)
	s.Equal(renamed, s.uow.records[s.barID].Name)
	s.Nil(s.storedSession(), "session should be dropped after save")
}

func (s *BarCommandsSuite) TestSaveDistributesStagedMenuBeforeRecordWrite() {
	s.seedEditingSession("staged-menu.pdf")
	s.log.ops = nil

	_, err := s.cmds.Save(s.ctx, s.userID, s.barID)
	s.Require().NoError(err)

	var uploads, writeAt = 0, -1
	for i, op := range s.log.ops {
		switch {
		case strings.HasPrefix(op, "upload:"):
			s.Less(writeAt, 0, "entry upload after the record write")
			uploads++
		case strings.HasPrefix(op, "write:"):
			writeAt = i
		}
	}
	s.Equal(1, uploads)
	s.GreaterOrEqual(writeAt, 0, "record write never happened")
	s.Empty(s.menus.staged, "staged object should be deleted after save")
}

func (s *BarCommandsSuite) TestSaveUploadFailureKeepsDraft() {
	s.seedEditingSession("staged-menu.pdf")
	s.menus.entryUploadErr = context.DeadlineExceeded

	_, err := s.cmds.Save(s.ctx, s.userID, s.barID)

	s.ErrorIs(err, commands.ErrMenuUpload)
	s.Empty(s.uow.updated, "record must not be written when uploads fail")

	session := s.storedSession()
	s.Require().NotNil(session)
	s.Equal(bar.StateEditing, session.State())
	s.Equal("staged-menu.pdf", session.StagedMenuKey())
}

func (s *BarCommandsSuite) TestSaveWriteFailureKeepsDraft() {
	s.seedEditingSession("")
	s.uow.updateErr = context.DeadlineExceeded

	_, err := s.cmds.Save(s.ctx, s.userID, s.barID)

	s.ErrorIs(err, commands.ErrSaveFailed)

	session := s.storedSession()
	s.Require().NotNil(session)
	s.Equal(bar.StateEditing, session.State())
	draft, err := session.Draft()
	s.Require().NoError(err)
	s.Equal("The Green Mill", draft.Name)
}

func (s *BarCommandsSuite) TestSaveRequiresActiveEdit() {
	_, err := s.cmds.Save(s.ctx, s.userID, s.barID)

	s.ErrorIs(err, commands.ErrNoActiveEdit)
}

func (s *BarCommandsSuite) TestCancelWithoutSessionIsNoop() {
	s.NoError(s.cmds.Cancel(s.ctx, s.userID, s.barID))
}

func (s *BarCommandsSuite) TestCancelDiscardsDraftAndStagedUpload() {
	s.seedEditingSession("staged-menu.pdf")

	s.Require().NoError(s.cmds.Cancel(s.ctx, s.userID, s.barID))

	s.Nil(s.storedSession())
	s.Empty(s.menus.staged)
	s.Equal("The Green Mill", s.uow.records[s.barID].Name)
}

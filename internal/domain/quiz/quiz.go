// Package quiz models the conversational intake flow as an explicit state
// machine: a step enum, a transition table keyed by (step, event), and a
// back-stack of snapshots for the "go back" action.
package quiz

import (
	"errors"

	"github.com/google/uuid"
	"franquicias-latam.backend/internal/domain/entities"
)

// Step is the current position in the quiz flow.
type Step string

const (
	StepWelcome      Step = "welcome"
	StepSector       Step = "sector"
	StepInvestment   Step = "investment"
	StepCountry      Step = "country"
	StepExperience   Step = "experience"
	StepContact      Step = "contact"
	StepVerification Step = "verification"
	StepResults      Step = "results"
)

// EventType tags a quiz event.
type EventType string

const (
	EventStart            EventType = "START"
	EventSelectSectors    EventType = "SELECT_SECTORS"
	EventSelectInvestment EventType = "SELECT_INVESTMENT"
	EventSelectCountry    EventType = "SELECT_COUNTRY"
	EventSelectExperience EventType = "SELECT_EXPERIENCE"
	EventSubmitContact    EventType = "SUBMIT_CONTACT"
	EventCodeVerified     EventType = "CODE_VERIFIED"
	EventBack             EventType = "GO_BACK"
)

var (
	// ErrInvalidTransition is returned when an event is not legal in the
	// current step.
	ErrInvalidTransition = errors.New("event not allowed in current step")
	// ErrNoHistory is returned by Back on an empty back-stack.
	ErrNoHistory = errors.New("no previous step")
	// ErrMissingPayload is returned when an event lacks its required data.
	ErrMissingPayload = errors.New("event payload incomplete")
)

// Event is a tagged union: exactly the fields for its Type are set.
type Event struct {
	Type            EventType                `json:"type"`
	SectorIDs       []uuid.UUID              `json:"sectorIds,omitempty"`
	InvestmentRange entities.InvestmentRange `json:"investmentRange,omitempty"`
	CountryID       uuid.UUID                `json:"countryId,omitempty"`
	ExperienceLevel entities.ExperienceLevel `json:"experienceLevel,omitempty"`
	Name            string                   `json:"name,omitempty"`
	Email           string                   `json:"email,omitempty"`
	Phone           string                   `json:"phone,omitempty"`
}

// Answers accumulates the investor's choices across steps.
type Answers struct {
	SectorIDs       []uuid.UUID              `json:"sectorIds"`
	InvestmentRange entities.InvestmentRange `json:"investmentRange,omitempty"`
	CountryID       uuid.UUID                `json:"countryId,omitempty"`
	ExperienceLevel entities.ExperienceLevel `json:"experienceLevel,omitempty"`
	Name            string                   `json:"name,omitempty"`
	Email           string                   `json:"email,omitempty"`
	Phone           string                   `json:"phone,omitempty"`
}

// snapshot is one back-stack entry: the step and the answers as they were
// when that step was left.
type snapshot struct {
	Step    Step    `json:"step"`
	Answers Answers `json:"answers"`
}

// State is the full quiz session state. It serializes to JSON for the
// session store.
type State struct {
	Step    Step       `json:"step"`
	Answers Answers    `json:"answers"`
	History []snapshot `json:"history"`
}

// New returns a fresh session at the welcome step.
func New() *State {
	return &State{Step: StepWelcome}
}

// transitions maps (current step, event type) to the next step. Events
// absent from a step's row are invalid there.
var transitions = map[Step]map[EventType]Step{
	StepWelcome:      {EventStart: StepSector},
	StepSector:       {EventSelectSectors: StepInvestment},
	StepInvestment:   {EventSelectInvestment: StepCountry},
	StepCountry:      {EventSelectCountry: StepExperience},
	StepExperience:   {EventSelectExperience: StepContact},
	StepContact:      {EventSubmitContact: StepVerification},
	StepVerification: {EventCodeVerified: StepResults},
}

// Apply advances the machine with ev. On success the prior step is pushed
// onto the back-stack. The results step is terminal.
func (s *State) Apply(ev Event) error {
	if ev.Type == EventBack {
		return s.Back()
	}

	row, ok := transitions[s.Step]
	if !ok {
		return ErrInvalidTransition
	}
	next, ok := row[ev.Type]
	if !ok {
		return ErrInvalidTransition
	}
	// The snapshot captures the state before the event so Back undoes
	// both the step and its answer.
	prev := snapshot{Step: s.Step, Answers: s.Answers.clone()}
	if err := s.record(ev); err != nil {
		return err
	}

	s.History = append(s.History, prev)
	s.Step = next
	if next == StepResults {
		// terminal: a completed flow cannot be backed out of
		s.History = nil
	}
	return nil
}

// Back pops the back-stack, restoring both step and answers. Results is
// terminal: the history is cleared on arriving there, so Back fails.
func (s *State) Back() error {
	if s.Step == StepResults || len(s.History) == 0 {
		return ErrNoHistory
	}
	top := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	s.Step = top.Step
	s.Answers = top.Answers
	return nil
}

// Complete reports whether the flow reached the terminal step.
func (s *State) Complete() bool {
	return s.Step == StepResults
}

// ContactInput assembles the intake payload once the flow is past the
// contact step.
func (s *State) ContactInput() *entities.CreateLeadInput {
	return &entities.CreateLeadInput{
		Name:            s.Answers.Name,
		Email:           s.Answers.Email,
		Phone:           s.Answers.Phone,
		Sectors:         s.Answers.SectorIDs,
		InvestmentRange: s.Answers.InvestmentRange,
		CountryID:       s.Answers.CountryID,
		ExperienceLevel: s.Answers.ExperienceLevel,
	}
}

func (s *State) record(ev Event) error {
	switch ev.Type {
	case EventStart:
		return nil
	case EventSelectSectors:
		if len(ev.SectorIDs) == 0 {
			return ErrMissingPayload
		}
		s.Answers.SectorIDs = ev.SectorIDs
	case EventSelectInvestment:
		if !ev.InvestmentRange.Valid() {
			return ErrMissingPayload
		}
		s.Answers.InvestmentRange = ev.InvestmentRange
	case EventSelectCountry:
		if ev.CountryID == uuid.Nil {
			return ErrMissingPayload
		}
		s.Answers.CountryID = ev.CountryID
	case EventSelectExperience:
		if !ev.ExperienceLevel.Valid() {
			return ErrMissingPayload
		}
		s.Answers.ExperienceLevel = ev.ExperienceLevel
	case EventSubmitContact:
		if ev.Name == "" || ev.Email == "" || ev.Phone == "" {
			return ErrMissingPayload
		}
		s.Answers.Name = ev.Name
		s.Answers.Email = ev.Email
		s.Answers.Phone = ev.Phone
	case EventCodeVerified:
		// verification happens out of band; nothing to record
	default:
		return ErrInvalidTransition
	}
	return nil
}

func (a Answers) clone() Answers {
	out := a
	out.SectorIDs = append([]uuid.UUID(nil), a.SectorIDs...)
	return out
}

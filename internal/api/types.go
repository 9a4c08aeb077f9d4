package api

import (
	"encoding/json"
	"time"
)

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Permissions handles staff permission sets that the backend may send either
// as an object or as a JSON-encoded string.
type Permissions map[string]bool

func (p *Permissions) UnmarshalJSON(data []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(data, &m); err == nil {
		*p = m
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "null" {
			*p = make(map[string]bool)
			return nil
		}
		return json.Unmarshal([]byte(s), (*map[string]bool)(p))
	}
	*p = make(map[string]bool)
	return nil
}

// Granted lists the enabled permission keys.
func (p Permissions) Granted() []string {
	out := make([]string, 0, len(p))
	for k, v := range p {
		if v {
			out = append(out, k)
		}
	}
	return out
}

// --- Championship ---

// Championship is the top-level organizer record.
type Championship struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"shortDescription"`
	FullDescription  string    `json:"fullDescription"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	Sponsors         []string  `json:"sponsors"`
	Active           bool      `json:"active"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ChampionshipInput is the create/update body for a championship.
type ChampionshipInput struct {
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	FullDescription  string   `json:"fullDescription,omitempty"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Sponsors         []string `json:"sponsors,omitempty"`
	Active           bool     `json:"active"`
}

// --- Season ---

// Season status values.
const (
	SeasonScheduled  = "agendado"
	SeasonInProgress = "em_andamento"
	SeasonCancelled  = "cancelado"
	SeasonFinished   = "finalizado"
)

// Inscription types.
const (
	InscriptionPerSeason = "por_temporada"
	InscriptionPerStage  = "por_etapa"
)

// Season groups stages and categories inside a championship.
type Season struct {
	ID               string    `json:"id"`
	ChampionshipID   string    `json:"championshipId"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	StartDate        string    `json:"startDate"`
	EndDate          string    `json:"endDate"`
	Status           string    `json:"status"`
	InscriptionType  string    `json:"inscriptionType"`
	InscriptionValue float64   `json:"inscriptionValue"`
	RegistrationOpen bool      `json:"registrationOpen"`
	PaymentMethods   []string  `json:"paymentMethods"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SeasonInput is the create/update body for a season.
type SeasonInput struct {
	ChampionshipID   string   `json:"championshipId"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Status           string   `json:"status"`
	InscriptionType  string   `json:"inscriptionType"`
	InscriptionValue float64  `json:"inscriptionValue"`
	RegistrationOpen bool     `json:"registrationOpen"`
	PaymentMethods   []string `json:"paymentMethods"`
}

// --- Category ---

// Category is a racing class within a season.
type Category struct {
	ID              string    `json:"id"`
	SeasonID        string    `json:"seasonId"`
	Name            string    `json:"name"`
	Ballast         float64   `json:"ballast"`
	MaxPilots       int       `json:"maxPilots"`
	MinimumAge      int       `json:"minimumAge"`
	BatteryQuantity int       `json:"batteryQuantity"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CategoryInput is the create/update body for a category.
type CategoryInput struct {
	SeasonID        string  `json:"seasonId"`
	Name            string  `json:"name"`
	Ballast         float64 `json:"ballast"`
	MaxPilots       int     `json:"maxPilots"`
	MinimumAge      int     `json:"minimumAge"`
	BatteryQuantity int     `json:"batteryQuantity"`
}

// --- Stage ---

// Stage is one race day of a season.
type Stage struct {
	ID                string    `json:"id"`
	SeasonID          string    `json:"seasonId"`
	Name              string    `json:"name"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	Kartodrome        string    `json:"kartodrome"`
	KartodromeAddress string    `json:"kartodromeAddress"`
	CategoryIDs       []string  `json:"categoryIds"`
	DoublePoints      bool      `json:"doublePoints"`
	Briefing          string    `json:"briefing"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// StageInput is the create/update body for a stage.
type StageInput struct {
	SeasonID          string   `json:"seasonId"`
	Name              string   `json:"name"`
	Date              string   `json:"date"`
	Time              string   `json:"time"`
	Kartodrome        string   `json:"kartodrome"`
	KartodromeAddress string   `json:"kartodromeAddress"`
	CategoryIDs       []string `json:"categoryIds"`
	DoublePoints      bool     `json:"doublePoints"`
	Briefing          string   `json:"briefing,omitempty"`
}

// --- Registration ---

// Registration status values.
const (
	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationCancelled = "cancelled"
	RegistrationExpired   = "expired"
)

// Registration is a pilot's entry into a season.
type Registration struct {
	ID            string    `json:"id"`
	SeasonID      string    `json:"seasonId"`
	UserID        string    `json:"userId"`
	PilotName     string    `json:"pilotName"`
	Email         string    `json:"email"`
	CategoryIDs   []string  `json:"categoryIds"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	Amount        float64   `json:"amount"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
}

// RegistrationStatusInput changes the status of a registration.
type RegistrationStatusInput struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// --- Penalty ---

// Penalty types.
const (
	PenaltyWarning         = "warning"
	PenaltyTime            = "time_penalty"
	PenaltyPosition        = "position_penalty"
	PenaltyDisqualified    = "disqualification"
	PenaltySuspension      = "suspension"
	PenaltyStatusPending   = "pending"
	PenaltyStatusApplied   = "applied"
	PenaltyStatusCancelled = "cancelled"
	PenaltyStatusAppealed  = "appealed"
)

// Penalty is a sanction applied to a pilot.
type Penalty struct {
	ID         string    `json:"id"`
	SeasonID   string    `json:"seasonId"`
	StageID    string    `json:"stageId"`
	CategoryID string    `json:"categoryId"`
	UserID     string    `json:"userId"`
	Type       string    `json:"type"`
	Value      string    `json:"value"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PenaltyInput is the create/update body for a penalty.
type PenaltyInput struct {
	SeasonID   string `json:"seasonId"`
	StageID    string `json:"stageId,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	UserID     string `json:"userId"`
	Type       string `json:"type"`
	Value      string `json:"value,omitempty"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	Notes      string `json:"notes,omitempty"`
}

// --- Staff ---

// Staff permission keys.
const (
	PermEditChampionship = "editChampionship"
	PermSeasons          = "seasons"
	PermCategories       = "categories"
	PermStages           = "stages"
	PermPilots           = "pilots"
	PermPenalties        = "penalties"
	PermClassification   = "classification"
)

// StaffMember is a user with delegated permissions on a championship.
type StaffMember struct {
	ID             string      `json:"id"`
	ChampionshipID string      `json:"championshipId"`
	UserID         string      `json:"userId"`
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Role           string      `json:"role"`
	Permissions    Permissions `json:"permissions"`
	AddedAt        time.Time   `json:"addedAt"`
}

// StaffInput adds a member by email or updates their permissions.
type StaffInput struct {
	Email       string          `json:"email,omitempty"`
	Permissions map[string]bool `json:"permissions"`
}

// --- Auth ---

// LoginInput is the credential exchange body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Name         string `json:"name"`
}

// --- Query ---

// QueryParams is a map of URL query parameters.
type QueryParams map[string]string

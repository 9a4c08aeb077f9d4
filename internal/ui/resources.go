package ui

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/api"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/form"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/ui/components"
)

// --- Scope ---

// scope is the championship and season the console is working in.
type scope struct {
	championshipID   string
	championshipName string
	seasonID         string
	seasonName       string
}

type scopeNeed int

const (
	needNone scopeNeed = iota
	needChampionship
	needSeason
)

// missing explains what has to be selected before need is met.
func (s scope) missing(need scopeNeed) string {
	switch {
	case need >= needChampionship && s.championshipID == "":
		return "Select a championship first (Championships tab, s)."
	case need >= needSeason && s.seasonID == "":
		return "Select a season first (Seasons tab, s)."
	}
	return ""
}

func (s scope) label() string {
	if s.championshipID == "" {
		return "no championship selected"
	}
	out := s.championshipName
	if out == "" {
		out = s.championshipID
	}
	if s.seasonID != "" {
		season := s.seasonName
		if season == "" {
			season = s.seasonID
		}
		out += " › " + season
	}
	return out
}

// --- Resource Definitions ---

type listRow struct {
	id    string
	label string
	cells []string
}

type resourceDef struct {
	key       string
	title     string
	singular  string
	need      scopeNeed
	creatable bool
	// selects names the scope level that "s" sets from the selected row.
	selects scopeNeed
	columns []components.TableColumn

	list    func(c *api.Client, sc scope) ([]listRow, error)
	options func(ctx context.Context, c *api.Client, sc scope) (fieldOptions, error)
	form    func(h formHost, c *api.Client, sc scope, id string, opts fieldOptions) (formView, error)
}

func (d *resourceDef) listPath() string { return "/" + d.key }

func resourceDefs() []*resourceDef {
	return []*resourceDef{
		championshipsDef(),
		seasonsDef(),
		categoriesDef(),
		stagesDef(),
		registrationsDef(),
		penaltiesDef(),
		staffDef(),
	}
}

// openForm hides the concrete screen type behind formView.
func openForm[R any](h formHost, id string, cfg formConfig[R]) (formView, error) {
	m, err := newFormScreen(h, id, cfg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// --- Shared Options ---

var brazilianStates = func() []option {
	codes := []string{
		"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
		"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
	}
	out := make([]option, len(codes))
	for i, c := range codes {
		out[i] = option{value: c, label: c}
	}
	return out
}()

var seasonStatusOptions = []option{
	{value: api.SeasonScheduled, label: "Scheduled"},
	{value: api.SeasonInProgress, label: "In progress"},
	{value: api.SeasonCancelled, label: "Cancelled"},
	{value: api.SeasonFinished, label: "Finished"},
}

var inscriptionTypeOptions = []option{
	{value: api.InscriptionPerSeason, label: "Per season"},
	{value: api.InscriptionPerStage, label: "Per stage"},
}

var paymentMethodOptions = []option{
	{value: "pix", label: "Pix"},
	{value: "cartao_credito", label: "Credit card"},
	{value: "boleto", label: "Boleto"},
}

var registrationStatusOptions = []option{
	{value: api.RegistrationPending, label: "Pending"},
	{value: api.RegistrationConfirmed, label: "Confirmed"},
	{value: api.RegistrationCancelled, label: "Cancelled"},
	{value: api.RegistrationExpired, label: "Expired"},
}

var penaltyTypeOptions = []option{
	{value: api.PenaltyWarning, label: "Warning"},
	{value: api.PenaltyTime, label: "Time"},
	{value: api.PenaltyPosition, label: "Positions"},
	{value: api.PenaltyDisqualified, label: "Disqualification"},
	{value: api.PenaltySuspension, label: "Suspension"},
}

var penaltyStatusOptions = []option{
	{value: api.PenaltyStatusPending, label: "Pending"},
	{value: api.PenaltyStatusApplied, label: "Applied"},
	{value: api.PenaltyStatusCancelled, label: "Cancelled"},
	{value: api.PenaltyStatusAppealed, label: "Appealed"},
}

var staffPermissionOptions = []option{
	{value: api.PermEditChampionship, label: "Championship"},
	{value: api.PermSeasons, label: "Seasons"},
	{value: api.PermCategories, label: "Categories"},
	{value: api.PermStages, label: "Stages"},
	{value: api.PermPilots, label: "Pilots"},
	{value: api.PermPenalties, label: "Penalties"},
	{value: api.PermClassification, label: "Classification"},
}

func maxLength(n int) func(any, form.Values) string {
	return func(v any, _ form.Values) string {
		if s, ok := v.(string); ok && len([]rune(s)) > n {
			return fmt.Sprintf("at most %d characters", n)
		}
		return ""
	}
}

// --- Championships ---

var championshipFields = []fieldDef{
	{name: "name", label: "Name", kind: fieldText, required: true, validate: maxLength(90)},
	{name: "shortDescription", label: "Short description", kind: fieldText, required: true, validate: maxLength(165)},
	{name: "fullDescription", label: "Full description", kind: fieldLongText},
	{name: "city", label: "City", kind: fieldText, required: true},
	{name: "state", label: "State", kind: fieldSelect, required: true, options: brazilianStates},
	{name: "active", label: "Active", kind: fieldToggle},
}

func championshipsDef() *resourceDef {
	return &resourceDef{
		key:       "championships",
		title:     "Championships",
		singular:  "Championship",
		need:      needNone,
		creatable: true,
		selects:   needChampionship,
		columns: []components.TableColumn{
			{Header: "Name", Width: 28},
			{Header: "City", Width: 18},
			{Header: "UF", Width: 3},
			{Header: "Active", Width: 6},
		},
		list: func(c *api.Client, _ scope) ([]listRow, error) {
			items, err := c.ListChampionships()
			if err != nil {
				return nil, err
			}
			rows := make([]listRow, len(items))
			for i, ch := range items {
				rows[i] = listRow{id: ch.ID, label: ch.Name, cells: []string{ch.Name, ch.City, ch.State, yesNo(ch.Active)}}
			}
			return rows, nil
		},
		form: func(h formHost, c *api.Client, _ scope, id string, _ fieldOptions) (formView, error) {
			return openForm(h, id, formConfig[api.Championship]{
				title:    "Championship",
				fields:   championshipFields,
				defaults: form.Values{"active": true},
				backTo:   "/championships",
				fetch: func(id string) (api.Championship, error) {
					return deref(c.GetChampionship(id))
				},
				create: func(p any) (api.Championship, error) {
					return deref(c.CreateChampionship(p.(api.ChampionshipInput)))
				},
				update: func(id string, p any) (api.Championship, error) {
					return deref(c.UpdateChampionship(id, p.(api.ChampionshipInput)))
				},
				payload: func(v form.Values) (any, error) {
					return decodeValues[api.ChampionshipInput](v)
				},
				successMessage: "Championship saved.",
			})
		},
	}
}

// --- Seasons ---

var seasonFields = []fieldDef{
	{name: "name", label: "Name", kind: fieldText, required: true, validate: maxLength(75)},
	{name: "description", label: "Description", kind: fieldLongText},
	{name: "startDate", label: "Start date", kind: fieldDate, required: true},
	{name: "endDate", label: "End date", kind: fieldDate, required: true, validate: notBefore("startDate")},
	{name: "status", label: "Status", kind: fieldSelect, required: true, options: seasonStatusOptions},
	{name: "inscriptionType", label: "Inscription", kind: fieldSelect, required: true, options: inscriptionTypeOptions},
	{name: "inscriptionValue", label: "Inscription value", kind: fieldMoney, required: true},
	{name: "registrationOpen", label: "Registration open", kind: fieldToggle},
	{name: "paymentMethods", label: "Payment methods", kind: fieldMulti, required: true, options: paymentMethodOptions},
}

// notBefore rejects dates earlier than the sibling date field.
func notBefore(sibling string) func(any, form.Values) string {
	return func(v any, all form.Values) string {
		end, _ := v.(string)
		start, _ := all[sibling].(string)
		if _, err := time.Parse(dateLayout, start); err != nil {
			return ""
		}
		if end < start {
			return "must not be before the start date"
		}
		return ""
	}
}

func seasonsDef() *resourceDef {
	return &resourceDef{
		key:       "seasons",
		title:     "Seasons",
		singular:  "Season",
		need:      needChampionship,
		creatable: true,
		selects:   needSeason,
		columns: []components.TableColumn{
			{Header: "Name", Width: 22},
			{Header: "Status", Width: 11},
			{Header: "Dates", Width: 23},
			{Header: "Inscription", Width: 12, Align: lipgloss.Right},
		},
		list: func(c *api.Client, sc scope) ([]listRow, error) {
			items, err := c.ListSeasons(sc.championshipID)
			if err != nil {
				return nil, err
			}
			rows := make([]listRow, len(items))
			for i, s := range items {
				rows[i] = listRow{id: s.ID, label: s.Name, cells: []string{
					s.Name,
					optionLabel(seasonStatusOptions, s.Status),
					shortDate(s.StartDate) + " → " + shortDate(s.EndDate),
					formatBRL(s.InscriptionValue),
				}}
			}
			return rows, nil
		},
		form: func(h formHost, c *api.Client, sc scope, id string, _ fieldOptions) (formView, error) {
			return openForm(h, id, formConfig[api.Season]{
				title:  "Season",
				fields: seasonFields,
				defaults: form.Values{
					"status":          api.SeasonScheduled,
					"inscriptionType": api.InscriptionPerSeason,
					"paymentMethods":  []string{"pix"},
				},
				backTo: "/seasons",
				fetch: func(id string) (api.Season, error) {
					return deref(c.GetSeason(id))
				},
				create: func(p any) (api.Season, error) {
					return deref(c.CreateSeason(p.(api.SeasonInput)))
				},
				update: func(id string, p any) (api.Season, error) {
					return deref(c.UpdateSeason(id, p.(api.SeasonInput)))
				},
				payload: func(v form.Values) (any, error) {
					in, err := decodeValues[api.SeasonInput](v)
					in.ChampionshipID = sc.championshipID
					return in, err
				},
				successMessage: "Season saved.",
			})
		},
	}
}

// --- Categories ---

var categoryFields = []fieldDef{
	{name: "name", label: "Name", kind: fieldText, required: true},
	{name: "ballast", label: "Ballast (kg)", kind: fieldNumber},
	{name: "maxPilots", label: "Max pilots", kind: fieldNumber, required: true, integer: true},
	{name: "minimumAge", label: "Minimum age", kind: fieldNumber, integer: true},
	{name: "batteryQuantity", label: "Batteries", kind: fieldNumber, integer: true},
}

func categoriesDef() *resourceDef {
	return &resourceDef{
		key:       "categories",
		title:     "Categories",
		singular:  "Category",
		need:      needSeason,
		creatable: true,
		columns: []components.TableColumn{
			{Header: "Name", Width: 24},
			{Header: "Pilots", Width: 6, Align: lipgloss.Right},
			{Header: "Min age", Width: 7, Align: lipgloss.Right},
			{Header: "Ballast", Width: 7, Align: lipgloss.Right},
		},
		list: func(c *api.Client, sc scope) ([]listRow, error) {
			items, err := c.ListCategories(sc.seasonID)
			if err != nil {
				return nil, err
			}
			rows := make([]listRow, len(items))
			for i, cat := range items {
				rows[i] = listRow{id: cat.ID, label: cat.Name, cells: []string{
					cat.Name,
					strconv.Itoa(cat.MaxPilots),
					strconv.Itoa(cat.MinimumAge),
					strconv.FormatFloat(cat.Ballast, 'f', -1, 64) + " kg",
				}}
			}
			return rows, nil
		},
		form: func(h formHost, c *api.Client, sc scope, id string, _ fieldOptions) (formView, error) {
			return openForm(h, id, formConfig[api.Category]{
				title:    "Category",
				fields:   categoryFields,
				defaults: form.Values{"batteryQuantity": 1},
				backTo:   "/categories",
				fetch: func(id string) (api.Category, error) {
					return deref(c.GetCategory(id))
				},
				create: func(p any) (api.Category, error) {
					return deref(c.CreateCategory(p.(api.CategoryInput)))
				},
				update: func(id string, p any) (api.Category, error) {
					return deref(c.UpdateCategory(id, p.(api.CategoryInput)))
				},
				payload: func(v form.Values) (any, error) {
					in, err := decodeValues[api.CategoryInput](v)
					in.SeasonID = sc.seasonID
					return in, err
				},
				successMessage: "Category saved.",
			})
		},
	}
}

// --- Stages ---

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var stageFields = []fieldDef{
	{name: "name", label: "Name", kind: fieldText, required: true},
	{name: "date", label: "Date", kind: fieldDate, required: true},
	{name: "time", label: "Time", kind: fieldText, required: true, placeholder: "HH:MM", validate: func(v any, _ form.Values) string {
		if s, _ := v.(string); !clockPattern.MatchString(strings.TrimSpace(s)) {
			return "must be a time like 09:30"
		}
		return ""
	}},
	{name: "kartodrome", label: "Kartodrome", kind: fieldText, required: true},
	{name: "kartodromeAddress", label: "Address", kind: fieldText},
	{name: "categoryIds", label: "Categories", kind: fieldMulti, required: true},
	{name: "doublePoints", label: "Double points", kind: fieldToggle},
	{name: "briefing", label: "Briefing", kind: fieldLongText},
}

// seasonOptions turns the season lookups into select options.
func seasonOptions(ctx context.Context, c *api.Client, sc scope) (fieldOptions, error) {
	opts, err := c.LoadSeasonOptions(ctx, sc.seasonID)
	if err != nil {
		return nil, err
	}
	categories := make([]option, len(opts.Categories))
	for i, cat := range opts.Categories {
		categories[i] = option{value: cat.ID, label: cat.Name}
	}
	stages := make([]option, len(opts.Stages))
	for i, st := range opts.Stages {
		stages[i] = option{value: st.ID, label: st.Name}
	}
	return fieldOptions{
		"categoryIds": categories,
		"categoryId":  categories,
		"stageId":     stages,
	}, nil
}

func stagesDef() *resourceDef {
	return &resourceDef{
		key:       "stages",
		title:     "Stages",
		singular:  "Stage",
		need:      needSeason,
		creatable: true,
		columns: []components.TableColumn{
			{Header: "Name", Width: 20},
			{Header: "Date", Width: 10},
			{Header: "Time", Width: 5},
			{Header: "Kartodrome", Width: 20},
		},
		list: func(c *api.Client, sc scope) ([]listRow, error) {
			items, err := c.ListStages(sc.seasonID)
			if err != nil {
				return nil, err
			}
			rows := make([]listRow, len(items))
			for i, st := range items {
				name := st.Name
				if st.DoublePoints {
					name += " ×2"
				}
				rows[i] = listRow{id: st.ID, label: st.Name, cells: []string{name, shortDate(st.Date), st.Time, st.Kartodrome}}
			}
			return rows, nil
		},
		options: seasonOptions,
		form: func(h formHost, c *api.Client, sc scope, id string, opts fieldOptions) (formView, error) {
			return openForm(h, id, formConfig[api.Stage]{
				title:  "Stage",
				fields: withOptions(stageFields, opts),
				backTo: "/stages",
				fetch: func(id string) (api.Stage, error) {
					return deref(c.GetStage(id))
				},
				create: func(p any) (api.Stage, error) {
					return deref(c.CreateStage(p.(api.StageInput)))
				},
				update: func(id string, p any) (api.Stage, error) {
					return deref(c.UpdateStage(id, p.(api.StageInput)))
				},
				payload: func(v form.Values) (any, error) {
					in, err := decodeValues[api.StageInput](v)
					in.SeasonID = sc.seasonID
					in.Time = strings.TrimSpace(in.Time)
					return in, err
				},
				successMessage: "Stage saved.",
			})
		},
	}
}

// --- Registrations ---

var registrationFields = []fieldDef{
	{name: "status", label: "Status", kind: fieldSelect, required: true, options: registrationStatusOptions},
	{name: "notes", label: "Notes", kind: fieldLongText},
}

func registrationsDef() *resourceDef {
	return &resourceDef{
		key:      "registrations",
		title:    "Registrations",
		singular: "Registration",
		need:     needSeason,
		columns: []components.TableColumn{
			{Header: "Pilot", Width: 22},
			{Header: "Status", Width: 10},
			{Header: "Payment", Width: 10},
			{Header: "Amount", Width: 12, Align: lipgloss.Right},
			{Header: "Email", Width: 10},
		},
		list: func(c *api.Client, sc scope) ([]listRow, error) {
			items, err := c.ListRegistrations(sc.seasonID, nil)
			if err != nil {
				return nil, err
			}
			rows := make([]listRow, len(items))
			for i, r := range items {
				rows[i] = listRow{id: r.ID, label: r.PilotName, cells: []string{
					r.PilotName,
					optionLabel(registrationStatusOptions, r.Status),
					r.PaymentStatus,
					formatBRL(r.Amount),
					r.Email,
				}}
			}
			return rows, nil
		},
		form: func(h formHost, c *api.Client, _ scope, id string, _ fieldOptions) (formView, error) {
			return openForm(h, id, formConfig[api.Registration]{
				title:  "Registration",
				fields: registrationFields,
				backTo: "/registrations",
				fetch: func(id string) (api.Registration, error) {
					return deref(c.GetRegistration(id))
				},
				update: func(id string, p any) (api.Registration, error) {
					return deref(c.UpdateRegistrationStatus(id, p.(api.RegistrationStatusInput)))
				},
				payload: func(v form.Values) (any, error) {
					return decodeValues[api.RegistrationStatusInput](v)
				},
				successMessage: "Registration updated.",
			})
		},
	}
}

// --- Penalties ---

func penaltyNeedsValue(all form.Values) bool {
	switch all["type"] {
	case api.PenaltyTime, api.PenaltyPosition, api.PenaltySuspension:
		return true
	}
	return false
}

var penaltyFields = []fieldDef{
	{name: "userId", label: "Pilot ID", kind: fieldText, required: true},
	{name: "type", label: "Type", kind: fieldSelect, required: true, options: penaltyTypeOptions},
	{name: "value", label: "Value", kind: fieldText, requiredIf: penaltyNeedsValue, placeholder: "seconds, positions or stages"},
	{name: "reason", label: "Reason", kind: fieldText, required: true},
	{name: "status", label: "Status", kind: fieldSelect, required: true, options: penaltyStatusOptions},
	{name: "stageId", label: "Stage", kind: fieldSelect},
	{name: "categoryId", label: "Category", kind: fieldSelect},
	{name: "notes", label: "Notes", kind: fieldLongText},
}

func penaltiesDef() *resourceDef {
	return &resourceDef{
		key:       "penalties",
		title:     "Penalties",
		singular:  "Penalty",
		need:      needSeason,
		creatable: true,
		columns: []components.TableColumn{
			{Header: "Pilot", Width: 14},
			{Header: "Type", Width: 16},
			{Header: "Value", Width: 6},
			{Header: "Status", Width: 9},
			{Header: "Reason", Width: 10},
		},
		list: func(c *api.Client, sc scope) ([]listRow, error) {
			items, err := c.ListPenalties(sc.seasonID, nil)
			if err != nil {
				return nil, err
			}
			rows := make([]listRow, len(items))
			for i, p := range items {
				rows[i] = listRow{id: p.ID, label: p.Reason, cells: []string{
					p.UserID,
					optionLabel(penaltyTypeOptions, p.Type),
					p.Value,
					optionLabel(penaltyStatusOptions, p.Status),
					p.Reason,
				}}
			}
			return rows, nil
		},
		options: seasonOptions,
		form: func(h formHost, c *api.Client, sc scope, id string, opts fieldOptions) (formView, error) {
			return openForm(h, id, formConfig[api.Penalty]{
				title:  "Penalty",
				fields: withOptions(penaltyFields, opts),
				defaults: form.Values{
					"type":   api.PenaltyWarning,
					"status": api.PenaltyStatusPending,
				},
				backTo: "/penalties",
				fetch: func(id string) (api.Penalty, error) {
					return deref(c.GetPenalty(id))
				},
				create: func(p any) (api.Penalty, error) {
					return deref(c.CreatePenalty(p.(api.PenaltyInput)))
				},
				update: func(id string, p any) (api.Penalty, error) {
					return deref(c.UpdatePenalty(id, p.(api.PenaltyInput)))
				},
				payload: func(v form.Values) (any, error) {
					in, err := decodeValues[api.PenaltyInput](v)
					in.SeasonID = sc.seasonID
					return in, err
				},
				successMessage: "Penalty saved.",
			})
		},
	}
}

// --- Staff ---

var staffCreateFields = []fieldDef{
	{name: "email", label: "Email", kind: fieldText, required: true, validate: func(v any, _ form.Values) string {
		if s, _ := v.(string); !strings.Contains(s, "@") {
			return "must be an email address"
		}
		return ""
	}},
	{name: "permissions", label: "Permissions", kind: fieldMulti, options: staffPermissionOptions},
}

var staffEditFields = staffCreateFields[1:]

func staffDef() *resourceDef {
	return &resourceDef{
		key:       "staff",
		title:     "Staff",
		singular:  "Staff member",
		need:      needChampionship,
		creatable: true,
		columns: []components.TableColumn{
			{Header: "Name", Width: 20},
			{Header: "Email", Width: 26},
			{Header: "Role", Width: 8},
			{Header: "Permissions", Width: 10},
		},
		list: func(c *api.Client, sc scope) ([]listRow, error) {
			items, err := c.ListStaff(sc.championshipID)
			if err != nil {
				return nil, err
			}
			rows := make([]listRow, len(items))
			for i, m := range items {
				granted := make([]string, 0, len(m.Permissions))
				for _, o := range staffPermissionOptions {
					if m.Permissions[o.value] {
						granted = append(granted, o.label)
					}
				}
				rows[i] = listRow{id: m.ID, label: m.Name, cells: []string{m.Name, m.Email, m.Role, strings.Join(granted, ", ")}}
			}
			return rows, nil
		},
		form: func(h formHost, c *api.Client, sc scope, id string, _ fieldOptions) (formView, error) {
			fields := staffCreateFields
			if id != "" {
				fields = staffEditFields
			}
			return openForm(h, id, formConfig[api.StaffMember]{
				title:  "Staff member",
				fields: fields,
				backTo: "/staff",
				fetch: func(id string) (api.StaffMember, error) {
					return deref(c.GetStaffMember(sc.championshipID, id))
				},
				create: func(p any) (api.StaffMember, error) {
					return deref(c.AddStaffMember(sc.championshipID, p.(api.StaffInput)))
				},
				update: func(id string, p any) (api.StaffMember, error) {
					return deref(c.UpdateStaffPermissions(sc.championshipID, id, p.(api.StaffInput)))
				},
				toForm: func(m api.StaffMember) (form.Values, error) {
					return form.Values{"email": m.Email, "permissions": m.Permissions.Granted()}, nil
				},
				payload: func(v form.Values) (any, error) {
					return staffInput(v), nil
				},
				successMessage: "Staff permissions saved.",
			})
		},
	}
}

// staffInput sends every known permission so revoked ones are explicit.
func staffInput(v form.Values) api.StaffInput {
	granted := map[string]bool{}
	if list, ok := v["permissions"].([]string); ok {
		for _, p := range list {
			granted[p] = true
		}
	}
	perms := make(map[string]bool, len(staffPermissionOptions))
	for _, o := range staffPermissionOptions {
		perms[o.value] = granted[o.value]
	}
	email, _ := v["email"].(string)
	return api.StaffInput{Email: strings.TrimSpace(email), Permissions: perms}
}

// --- Formatting ---

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// shortDate trims ISO timestamps to the day.
func shortDate(s string) string {
	if len(s) >= len(dateLayout) {
		return s[:len(dateLayout)]
	}
	return s
}

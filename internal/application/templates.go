package application

import (
	"sort"
	"strings"
)

// DefaultSessionType is used when a session carries no type.
const DefaultSessionType = "default"

// TemplateField is one type-specific detail collected for a session.
type TemplateField struct {
	Name     string
	Label    string
	Required bool
}

// SessionTemplate lists the details a session type collects in its metadata.
type SessionTemplate struct {
	Type   string
	Label  string
	Fields []TemplateField
}

var sessionTemplates = map[string][]TemplateField{
	"workshop": {
		{Name: "instructor", Label: "Instructor", Required: true},
		{Name: "skill_level", Label: "Skill Level"},
		{Name: "materials_required", Label: "Materials Required"},
		{Name: "max_participants", Label: "Max Participants"},
	},
	"training": {
		{Name: "trainer", Label: "Trainer/Facilitator", Required: true},
		{Name: "training_module", Label: "Training Module"},
		{Name: "certification", Label: "Certification Offered"},
		{Name: "prerequisites", Label: "Prerequisites"},
	},
	"panel_discussion": {
		{Name: "moderator", Label: "Moderator", Required: true},
		{Name: "panelists", Label: "Panelists", Required: true},
		{Name: "discussion_topics", Label: "Discussion Topics"},
		{Name: "qa_session", Label: "Q&A Session", Required: true},
	},
	"seminar": {
		{Name: "speaker", Label: "Speaker", Required: true},
		{Name: "speaker_bio", Label: "Speaker Bio"},
		{Name: "presentation_title", Label: "Presentation Title"},
		{Name: "handouts_available", Label: "Handouts Available"},
	},
	"conference": {
		{Name: "speaker", Label: "Speaker", Required: true},
		{Name: "track", Label: "Conference Track"},
		{Name: "session_format", Label: "Session Format"},
		{Name: "room", Label: "Room/Venue"},
	},
	"networking": {
		{Name: "activity_type", Label: "Activity Type"},
		{Name: "facilitator", Label: "Facilitator"},
		{Name: "icebreaker_topic", Label: "Icebreaker/Topic"},
		{Name: "expected_attendees", Label: "Expected Attendees"},
	},
	"fundraiser": {
		{Name: "activity_name", Label: "Fundraising Activity", Required: true},
		{Name: "target_amount", Label: "Target Amount ($)"},
		{Name: "sponsor", Label: "Sponsor/Partner"},
		{Name: "payment_methods", Label: "Payment Methods"},
	},
	"community_service": {
		{Name: "activity", Label: "Service Activity", Required: true},
		{Name: "coordinator", Label: "Coordinator", Required: true},
		{Name: "required_equipment", Label: "Required Equipment"},
		{Name: "volunteer_count", Label: "Number of Volunteers Needed"},
	},
	"volunteer": {
		{Name: "activity", Label: "Volunteer Activity", Required: true},
		{Name: "supervisor", Label: "Supervisor/Lead", Required: true},
		{Name: "requirements", Label: "Requirements"},
		{Name: "volunteer_positions", Label: "Available Positions"},
	},
	"webinar": {
		{Name: "presenter", Label: "Presenter", Required: true},
		{Name: "platform", Label: "Platform", Required: true},
		{Name: "meeting_link", Label: "Meeting Link"},
		{Name: "recording_available", Label: "Recording Available"},
	},
	"hackathon": {
		{Name: "challenge_theme", Label: "Challenge/Theme", Required: true},
		{Name: "judges", Label: "Judges"},
		{Name: "prizes", Label: "Prizes"},
		{Name: "tech_stack", Label: "Allowed Technologies"},
	},
	"sports_event": {
		{Name: "sport_type", Label: "Sport/Activity", Required: true},
		{Name: "teams_participants", Label: "Teams/Participants"},
		{Name: "referee_official", Label: "Referee/Official"},
		{Name: "equipment_needed", Label: "Equipment Needed"},
	},
	"health_screening": {
		{Name: "medical_professional", Label: "Medical Professional", Required: true},
		{Name: "screening_type", Label: "Screening Type", Required: true},
		{Name: "prerequisites", Label: "Prerequisites/Instructions"},
		{Name: "capacity", Label: "Capacity"},
	},
	"cultural_event": {
		{Name: "performer_artist", Label: "Performer/Artist", Required: true},
		{Name: "performance_type", Label: "Performance Type"},
		{Name: "cultural_context", Label: "Cultural Context"},
		{Name: "special_requirements", Label: "Special Requirements"},
	},
	DefaultSessionType: {
		{Name: "speaker", Label: "Speaker/Lead"},
		{Name: "notes", Label: "Additional Notes"},
	},
}

// sessionTypeLabels overrides the title-cased type name where it reads badly.
var sessionTypeLabels = map[string]string{
	"panel_discussion":  "Panel Discussion",
	"community_service": "Community Service",
	"sports_event":      "Sports Event",
	"health_screening":  "Health Screening",
	"cultural_event":    "Cultural Event",
}

// TemplateFor returns the template of a session type. Unknown types fall back
// to the default template.
func TemplateFor(sessionType string) SessionTemplate {
	key := sessionType
	fields, ok := sessionTemplates[key]
	if !ok {
		key = DefaultSessionType
		fields = sessionTemplates[key]
	}
	out := make([]TemplateField, len(fields))
	copy(out, fields)
	return SessionTemplate{Type: key, Label: SessionTypeLabel(key), Fields: out}
}

// SessionTemplates lists every known template ordered by type.
func SessionTemplates() []SessionTemplate {
	types := make([]string, 0, len(sessionTemplates))
	for t := range sessionTemplates {
		types = append(types, t)
	}
	sort.Strings(types)
	out := make([]SessionTemplate, 0, len(types))
	for _, t := range types {
		out = append(out, TemplateFor(t))
	}
	return out
}

// MissingTemplateFields returns the labels of required fields left empty.
func MissingTemplateFields(sessionType string, metadata map[string]string) []string {
	var missing []string
	for _, field := range TemplateFor(sessionType).Fields {
		if field.Required && metadata[field.Name] == "" {
			missing = append(missing, field.Label)
		}
	}
	return missing
}

// SessionTypeLabel renders a session type for display.
func SessionTypeLabel(sessionType string) string {
	if label, ok := sessionTypeLabels[sessionType]; ok {
		return label
	}
	return FormatFieldName(sessionType)
}

// FormatFieldName title-cases a snake_case name.
func FormatFieldName(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

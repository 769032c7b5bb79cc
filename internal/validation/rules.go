package validation

import (
	"regexp"

	"github.com/avelar/taskhub-be/internal/models"
)

var digitRe = regexp.MustCompile(`\d`)

// Signup validates new account registrations.
var Signup = RuleSet{
	"email": {Label: "Email", Required: true, Format: Email},
	"password": {
		Label:      "Password",
		Required:   true,
		MinLen:     6,
		Pattern:    digitRe,
		PatternMsg: "Password must contain at least one number",
		NoTrim:     true,
	},
	"name": {Label: "Name", Required: true, MinLen: 2},
}

// Login validates authentication requests.
var Login = RuleSet{
	"email":    {Label: "Email", Required: true, Format: Email},
	"password": {Label: "Password", Required: true, NoTrim: true},
}

// TaskCreate validates new task payloads.
var TaskCreate = RuleSet{
	"title":       {Label: "Task title", Required: true, MinLen: 3, MaxLen: 200},
	"description": {Label: "Description", MaxLen: 500},
	"priority":    {Label: "Priority", Enum: models.Priorities},
	"dueDate":     {Label: "Due date", Format: DateTime},
}

// TaskUpdate validates partial task updates. Every field is optional; absent
// fields are left untouched by the update. The owner is never part of the
// payload.
var TaskUpdate = RuleSet{
	"title":       {Label: "Task title", MinLen: 3, MaxLen: 200},
	"description": {Label: "Description", MaxLen: 500},
	"priority":    {Label: "Priority", Enum: models.Priorities},
	"dueDate":     {Label: "Due date", Format: DateTime},
	"completed":   {Label: "Completed", Kind: Bool},
}

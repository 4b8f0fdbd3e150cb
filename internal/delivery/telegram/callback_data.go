package telegram

import "strings"

// Callback action constants.
const (
	actionSession    = "session"
	actionDaily      = "daily"
	actionDifficulty = "difficulty"
	actionMenu       = "menu"
	actionSettings   = "settings"
	actionAdd        = "add"
)

// Session sub-actions.
const (
	sessionShowAnswer = "show_answer"
	sessionReply      = "reply"
	sessionNext       = "next"
	sessionStop       = "stop"
)

// Daily prompt sub-actions.
const (
	dailyYes = "yes"
	dailyNo  = "no"
)

// Settings sub-actions.
const (
	settingsMenu    = "menu"
	settingsTime    = "time"
	settingsCount   = "count"
	settingsDisable = "disable"
)

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// buildSessionCallback builds callback data for in-session actions.
func buildSessionCallback(subAction string) string {
	return callbackData{
		Action: actionSession,
		Params: []string{subAction},
	}.encode()
}

// buildDailyCallback builds callback data for the daily prompt answer.
func buildDailyCallback(choice string) string {
	return callbackData{
		Action: actionDaily,
		Params: []string{choice}, // yes/no
	}.encode()
}

// buildDifficultyCallback builds callback data for a difficulty choice.
func buildDifficultyCallback(level string) string {
	return callbackData{
		Action: actionDifficulty,
		Params: []string{level}, // junior/middle/senior
	}.encode()
}

// buildMenuCallback builds callback data for returning to the main menu.
func buildMenuCallback() string {
	return actionMenu
}

// buildSettingsCallback builds callback data for settings-related actions.
func buildSettingsCallback(subAction string) string {
	return callbackData{
		Action: actionSettings,
		Params: []string{subAction},
	}.encode()
}

// buildAddQuestionCallback builds callback data for starting the add-question flow.
func buildAddQuestionCallback() string {
	return actionAdd
}

package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallbackDataEncodeDecode(t *testing.T) {
	tests := []struct {
		name           string
		data           string
		expectedAction string
		expectedParams []string
	}{
		{
			name:           "session reply",
			data:           buildSessionCallback(sessionReply),
			expectedAction: actionSession,
			expectedParams: []string{sessionReply},
		},
		{
			name:           "daily yes",
			data:           buildDailyCallback(dailyYes),
			expectedAction: actionDaily,
			expectedParams: []string{dailyYes},
		},
		{
			name:           "difficulty",
			data:           buildDifficultyCallback("senior"),
			expectedAction: actionDifficulty,
			expectedParams: []string{"senior"},
		},
		{
			name:           "settings disable",
			data:           buildSettingsCallback(settingsDisable),
			expectedAction: actionSettings,
			expectedParams: []string{settingsDisable},
		},
		{
			name:           "menu without params",
			data:           buildMenuCallback(),
			expectedAction: actionMenu,
			expectedParams: []string{},
		},
		{
			name:           "add question",
			data:           buildAddQuestionCallback(),
			expectedAction: actionAdd,
			expectedParams: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd := decodeCallback(tt.data)

			assert.Equal(t, tt.expectedAction, cd.Action)
			assert.Equal(t, tt.expectedParams, cd.Params)
			assert.Equal(t, tt.data, cd.Raw)
		})
	}
}

func TestDecodeCallbackUnknownPayload(t *testing.T) {
	cd := decodeCallback("something:weird:extra")

	assert.Equal(t, "something", cd.Action)
	assert.Equal(t, []string{"weird", "extra"}, cd.Params)
}

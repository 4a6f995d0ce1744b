package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOldYear(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsOldYear("2023", now))
	assert.True(t, IsOldYear("2019", now))
	assert.False(t, IsOldYear("2024", now))
	assert.False(t, IsOldYear("2025", now))
	assert.False(t, IsOldYear("abcd", now))
}

func TestDocument_HasRecentReminder(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty history", func(t *testing.T) {
		assert.False(t, Document{}.HasRecentReminder(now))
	})

	t.Run("within window", func(t *testing.T) {
		d := Document{ReminderHistory: []ReminderHistory{
			{SentDate: now.Add(-30 * 24 * time.Hour)},
			{SentDate: now.Add(-6 * 24 * time.Hour)},
		}}
		assert.True(t, d.HasRecentReminder(now))
	})

	t.Run("outside window", func(t *testing.T) {
		d := Document{ReminderHistory: []ReminderHistory{
			{SentDate: now.Add(-8 * 24 * time.Hour)},
		}}
		assert.False(t, d.HasRecentReminder(now))
	})
}

func TestDocument_LatestReminder(t *testing.T) {
	assert.Nil(t, Document{}.LatestReminder())

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := Document{ReminderHistory: []ReminderHistory{
		{SentDate: base, SentBy: "a"},
		{SentDate: base.Add(time.Hour), SentBy: "b"},
	}}
	latest := d.LatestReminder()
	require.NotNil(t, latest)
	assert.Equal(t, "b", latest.SentBy)
}

func TestDocument_Clone(t *testing.T) {
	now := time.Now()
	d := Document{ReceivedDate: &now, ReminderHistory: []ReminderHistory{{SentBy: "x"}}}
	c := d.Clone()
	c.ReminderHistory[0].SentBy = "y"
	*c.ReceivedDate = now.Add(time.Hour)

	assert.Equal(t, "x", d.ReminderHistory[0].SentBy)
	assert.Equal(t, now, *d.ReceivedDate)
}

func TestStatus_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		S Status `json:"s"`
	}{StatusRequested})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"requested"}`, string(b))

	var out struct {
		S Status `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"rejected"}`), &out))
	assert.Equal(t, StatusRejected, out.S)

	assert.Error(t, json.Unmarshal([]byte(`{"s":"archived"}`), &out))
}

func TestActivityType_InfoCoversEveryType(t *testing.T) {
	seen := map[string]bool{}
	for _, at := range ActivityTypes() {
		info := at.Info()
		assert.NotEmpty(t, info.Label, at.String())
		assert.NotEmpty(t, info.Icon, at.String())
		assert.False(t, seen[info.Name], "duplicate name %s", info.Name)
		seen[info.Name] = true

		parsed, err := ParseActivityType(info.Name)
		require.NoError(t, err)
		assert.Equal(t, at, parsed)
	}
	assert.Len(t, seen, 12)
}

func TestFieldType_Info(t *testing.T) {
	assert.Equal(t, 140.0, FieldSignature.Info().Width)
	assert.Equal(t, 50.0, FieldSignature.Info().Height)
	assert.Equal(t, 200.0, FieldAddress.Info().Width)
	assert.Equal(t, "Company", FieldCompanyName.Info().Label)

	ft, err := ParseFieldType("date-signed")
	require.NoError(t, err)
	assert.Equal(t, FieldDateSigned, ft)
}

func TestClientLink(t *testing.T) {
	l := NewClientLink("b", "a")
	assert.Equal(t, ClientLink{A: "a", B: "b"}, l)
	assert.Equal(t, NewClientLink("a", "b"), l)

	other, ok := l.Other("a")
	assert.True(t, ok)
	assert.Equal(t, "b", other)

	_, ok = l.Other("c")
	assert.False(t, ok)
}

func TestConfiguredRole_DisplayName(t *testing.T) {
	assert.Equal(t, "Client", ConfiguredRole{RoleType: RoleClient}.DisplayName())
	assert.Equal(t, "Auditor", ConfiguredRole{RoleType: RoleExternal, Label: "Auditor"}.DisplayName())
	assert.Equal(t, "External Recipient", ConfiguredRole{RoleType: RoleExternal}.DisplayName())
	assert.Equal(t, "Firm User", ConfiguredRole{RoleType: RoleFirmUser}.DisplayName())
	assert.Equal(t, "Jane", ConfiguredRole{RoleType: RoleFirmUser, Name: "Jane"}.DisplayName())
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_SplitPrefixes(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{raw: ".", want: []string{"."}},
		{raw: "", want: nil},
		{raw: ".|..", want: []string{".", ".."}},
		{raw: "|!||?|", want: []string{"!", "?"}},
		{raw: "|", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPrefixes(tt.raw))
		})
	}
}

func Test_ValidatePrefix(t *testing.T) {
	tests := []struct {
		prefix  string
		wantErr error
	}{
		{prefix: "!", wantErr: nil},
		{prefix: "fn ", wantErr: nil},
		{prefix: "", wantErr: ErrEmptyPrefix},
		{prefix: "a|b", wantErr: ErrPrefixSeparator},
		{prefix: "@bot", wantErr: ErrPrefixMentionish},
		{prefix: "#general", wantErr: ErrPrefixMentionish},
		{prefix: "<@123>", wantErr: ErrPrefixMentionish},
		{prefix: "<#123>", wantErr: ErrPrefixMentionish},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, ValidatePrefix(tt.prefix))
		})
	}
}

func Test_FeatureCatalog(t *testing.T) {
	c := NewFeatureCatalog([]string{"reddit", "GENERAL"}, []string{"general"})

	assert.Equal(t, []string{"GENERAL", "REDDIT"}, c.Names())
	assert.True(t, c.Known("Reddit"))
	assert.False(t, c.Known("music"))
	assert.True(t, c.Protected("GENERAL"))
	assert.False(t, c.Protected("REDDIT"))

	defaults := c.DefaultSettings()
	assert.Equal(t, DefaultPrefix, defaults.Prefix())
	assert.True(t, defaults.Feature("general"))
	assert.True(t, defaults.Feature("REDDIT"))
	assert.False(t, defaults.Feature("MUSIC"))
}

func Test_Settings_Clone(t *testing.T) {
	orig := DefaultFeatureCatalog().DefaultSettings()
	cp := orig.Clone()
	cp[SettingCogs].(map[string]any)[FeatureReddit] = false
	cp[SettingPrefix] = "!"

	assert.True(t, orig.Feature(FeatureReddit))
	assert.Equal(t, DefaultPrefix, orig.Prefix())
}

package utils

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func Test_PermissionByName(t *testing.T) {
	tests := []struct {
		name   string
		want   int64
		wantOK bool
	}{
		{"administrator", discordgo.PermissionAdministrator, true},
		{"Manage_Guild", discordgo.PermissionManageGuild, true},
		{" manage-messages ", discordgo.PermissionManageMessages, true},
		{"fly", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PermissionByName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_MemberPermissions(t *testing.T) {
	guild := &discordgo.Guild{
		ID:      "g1",
		OwnerID: "owner",
		Roles: []*discordgo.Role{
			{ID: "g1", Permissions: discordgo.PermissionSendMessages},
			{ID: "mods", Permissions: discordgo.PermissionManageMessages},
			{ID: "admins", Permissions: discordgo.PermissionAdministrator},
		},
	}

	tests := []struct {
		name      string
		member    *discordgo.Member
		flag      int64
		wantAllow bool
	}{
		{
			name:      "owner has everything",
			member:    &discordgo.Member{User: &discordgo.User{ID: "owner"}},
			flag:      discordgo.PermissionAdministrator,
			wantAllow: true,
		},
		{
			name:      "everyone role applies",
			member:    &discordgo.Member{User: &discordgo.User{ID: "u"}},
			flag:      discordgo.PermissionSendMessages,
			wantAllow: true,
		},
		{
			name:      "missing role",
			member:    &discordgo.Member{User: &discordgo.User{ID: "u"}},
			flag:      discordgo.PermissionManageMessages,
			wantAllow: false,
		},
		{
			name:      "member role applies",
			member:    &discordgo.Member{User: &discordgo.User{ID: "u"}, Roles: []string{"mods"}},
			flag:      discordgo.PermissionManageMessages,
			wantAllow: true,
		},
		{
			name:      "administrator implies all",
			member:    &discordgo.Member{User: &discordgo.User{ID: "u"}, Roles: []string{"admins"}},
			flag:      discordgo.PermissionBanMembers,
			wantAllow: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perms := MemberPermissions(guild, tt.member)
			assert.Equal(t, tt.wantAllow, HasPermission(perms, tt.flag))
		})
	}

	assert.Zero(t, MemberPermissions(nil, &discordgo.Member{}))
}

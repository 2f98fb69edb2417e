package utils

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

var permissionNames = map[string]int64{
	"administrator":   discordgo.PermissionAdministrator,
	"manage-guild":    discordgo.PermissionManageGuild,
	"manage-channels": discordgo.PermissionManageChannels,
	"manage-messages": discordgo.PermissionManageMessages,
	"manage-roles":    discordgo.PermissionManageRoles,
	"kick-members":    discordgo.PermissionKickMembers,
	"ban-members":     discordgo.PermissionBanMembers,
}

// PermissionByName maps a permission name such as "administrator" or "manage_guild" to
// its bit.
func PermissionByName(name string) (int64, bool) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	flag, ok := permissionNames[name]
	return flag, ok
}

// HasPermission reports whether granted includes every bit of flag. Administrator
// implies all permissions.
func HasPermission(granted, flag int64) bool {
	if granted&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return granted&flag == flag
}

// MemberPermissions computes guild-level permissions: everything for the guild owner,
// otherwise the @everyone role OR-ed with each of the member's roles.
func MemberPermissions(guild *discordgo.Guild, member *discordgo.Member) int64 {
	if guild == nil || member == nil || member.User == nil {
		return 0
	}
	if guild.OwnerID == member.User.ID {
		return discordgo.PermissionAll
	}

	held := make(map[string]bool, len(member.Roles)+1)
	held[guild.ID] = true // @everyone shares the guild id
	for _, id := range member.Roles {
		held[id] = true
	}

	var perms int64
	for _, role := range guild.Roles {
		if held[role.ID] {
			perms |= role.Permissions
		}
	}
	if perms&discordgo.PermissionAdministrator != 0 {
		return discordgo.PermissionAll
	}
	return perms
}

package bot

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// errorKind distinguishes the Discord failure classes the message lifecycle
// branches on. Anything unclassified is treated as transient and retried on
// a later tick.
type errorKind int

const (
	errKindTransient errorKind = iota
	errKindNotFound
	errKindPermission
)

func classifyDiscordError(err error) errorKind {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return errKindTransient
	}

	if rest.Message != nil {
		switch rest.Message.Code {
		case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeUnknownMessage, discordgo.ErrCodeUnknownGuild:
			return errKindNotFound
		case discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
			return errKindPermission
		}
	}
	if rest.Response != nil {
		switch rest.Response.StatusCode {
		case http.StatusNotFound:
			return errKindNotFound
		case http.StatusForbidden:
			return errKindPermission
		}
	}
	return errKindTransient
}

// isNotFound reports whether err means the referenced entity no longer exists
func isNotFound(err error) bool {
	return err != nil && classifyDiscordError(err) == errKindNotFound
}

// isPermissionDenied reports whether err is a Discord permission failure
func isPermissionDenied(err error) bool {
	return err != nil && classifyDiscordError(err) == errKindPermission
}

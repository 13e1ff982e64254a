package bot

import (
	"errors"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDiscordError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errorKind
	}{
		{
			name: "unknown message code",
			err:  &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownMessage}},
			want: errKindNotFound,
		},
		{
			name: "unknown channel code",
			err:  &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeUnknownChannel}},
			want: errKindNotFound,
		},
		{
			name: "missing permissions code",
			err:  &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingPermissions}},
			want: errKindPermission,
		},
		{
			name: "missing access code",
			err:  &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeMissingAccess}},
			want: errKindPermission,
		},
		{
			name: "forbidden status without api code",
			err:  &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}},
			want: errKindPermission,
		},
		{
			name: "not found status without api code",
			err:  &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusNotFound}},
			want: errKindNotFound,
		},
		{
			name: "plain network error",
			err:  errors.New("connection reset"),
			want: errKindTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyDiscordError(tt.err))
		})
	}
}

func TestIsPermissionDenied_NilError(t *testing.T) {
	assert.False(t, isPermissionDenied(nil))
	assert.False(t, isNotFound(nil))
}

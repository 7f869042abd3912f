package response

import (
	"errors"
	"net/http"
	"testing"

	"github.com/communehq/commune/internal/domain/apperr"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.IllegalAuthenticationToken(""), http.StatusUnauthorized},
		{apperr.NotGroupAdmin(""), http.StatusForbidden},
		{apperr.NotGroupMember(""), http.StatusForbidden},
		{apperr.WrongInvitationSecret(""), http.StatusForbidden},
		{apperr.UserProfileExpired(""), http.StatusForbidden},
		{apperr.EmailVerificationFailed(""), http.StatusForbidden},
		{apperr.NotFound(""), http.StatusNotFound},
		{apperr.NotFoundOnRepository(""), http.StatusNotFound},
		{apperr.StillBelongsToOneOrMoreGroups(""), http.StatusConflict},
		{apperr.InsufficientAdmins(""), http.StatusConflict},
		{apperr.IllegalProperties(""), http.StatusUnprocessableEntity},
		{apperr.IllegalValue(""), http.StatusUnprocessableEntity},
		{apperr.Dao(errors.New("io")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusOf(c.err); got != c.want {
			t.Fatalf("StatusOf(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

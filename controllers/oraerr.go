package controllers

import "strings"

// oraFriendly maps the Oracle error codes the console commonly triggers
// to operator-readable messages. Unmapped errors pass through verbatim.
var oraFriendly = map[string]string{
	"ORA-01920": "The user or role already exists in the database.",
	"ORA-00001": "A record with that name already exists.",
	"ORA-01031": "The connected account lacks the database privilege for this operation.",
	"ORA-00959": "The specified tablespace does not exist.",
}

// friendlyError translates a catalog error into a message suitable for
// the flash banner.
func friendlyError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for code, friendly := range oraFriendly {
		if strings.Contains(msg, code) {
			return friendly
		}
	}
	return msg
}

package handlers

import (
	"log"
	"net/http"
)

// respondWithError writes a plain error page and logs the underlying cause.
// userMsg is what the player sees; logMsg names the failing operation in the
// server log and defaults to userMsg.
func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}

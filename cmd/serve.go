package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pngstash/pngstash/chunk"
	"github.com/pngstash/pngstash/constants"
	"github.com/pngstash/pngstash/model"
	"github.com/pngstash/pngstash/png"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the codec over HTTP",
	Long: `Runs an HTTP API over the codec: POST a PNG body to /encode with
type and message query parameters to get the stashed PNG back, or to
/decode to get the hidden message as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// requestType picks the chunk type code for a request: the type query
// parameter when present, the configured default otherwise.
func requestType(r *http.Request) string {
	if t := r.URL.Query().Get("type"); t != "" {
		return t
	}
	return constants.GetChunkType()
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

// statusFor maps a codec or container failure to an HTTP status. Anything
// wrong with the uploaded bytes is the client's fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, png.ErrNoChunk):
		return http.StatusNotFound
	case errors.Is(err, png.ErrBadSignature),
		errors.Is(err, chunk.ErrInvalidLength),
		errors.Is(err, chunk.ErrInvalidTypeByte),
		errors.Is(err, chunk.ErrChecksumMismatch),
		errors.Is(err, chunk.ErrNotText):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HandleEncode embeds the message query parameter in the posted PNG and
// responds with the rewritten file. Exported so tests can hit it directly.
func HandleEncode(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing message query parameter"))
		return
	}
	ct, err := chunk.TypeFromString(requestType(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("reading request body: %w", err))
		return
	}
	f, err := png.ReadFrom(bytes.NewReader(body))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	f.RemoveChunk(ct.String())
	f.AppendChunk(chunk.New(ct, []byte(message)))

	w.Header().Set("Content-Type", "image/png")
	w.Write(f.Bytes())
}

// HandleDecode recovers the hidden message from the posted PNG and responds
// with it as JSON.
func HandleDecode(w http.ResponseWriter, r *http.Request) {
	typ := requestType(r)

	f, err := png.ReadFrom(r.Body)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	c, ok := f.ChunkByType(typ)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %q", png.ErrNoChunk, typ))
		return
	}
	msg, err := c.Text()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.DecodeResponse{Type: typ, Message: msg})
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/encode", HandleEncode).Methods("POST")
	router.HandleFunc("/decode", HandleDecode).Methods("POST")

	addr := constants.GetServeAddr()
	log.Printf("pngstash listening on %v", addr)
	log.Fatal(http.ListenAndServe(addr, cors.Default().Handler(router)))
}

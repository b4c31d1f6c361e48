package handler

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cryptor-go/internal/config"
	"github.com/cryptor-go/internal/cryptor"
	"github.com/cryptor-go/internal/dao"
	"github.com/cryptor-go/internal/digest"
	"github.com/cryptor-go/internal/errors"
	"github.com/cryptor-go/internal/random"
	"github.com/cryptor-go/internal/trace"
)

// CryptoHandler serves one-shot cipher, digest and random endpoints
type CryptoHandler struct {
	cfg    *config.Config
	keyDAO *dao.KeyDAO
}

// NewCryptoHandler creates a new crypto handler
func NewCryptoHandler(cfg *config.Config, keyDAO *dao.KeyDAO) *CryptoHandler {
	return &CryptoHandler{cfg: cfg, keyDAO: keyDAO}
}

// cipherRequest is the wire form of a cipher invocation. Key material is
// given either inline as hex or by reference to a stored key.
type cipherRequest struct {
	Algorithm    string `json:"algorithm"`
	Mode         string `json:"mode"`
	Padding      string `json:"padding,omitempty"`
	Key          string `json:"key,omitempty"`      // hex
	KeyName      string `json:"key_name,omitempty"` // stored key reference
	KeyPassword  string `json:"key_password,omitempty"`
	IV           string `json:"iv,omitempty"`    // hex
	Tweak        string `json:"tweak,omitempty"` // hex
	Rounds       int    `json:"rounds,omitempty"`
	CounterOrder string `json:"counter_order,omitempty"` // be, le
	Data         string `json:"data"`                    // base64
}

func (h *CryptoHandler) resolveKey(req *cipherRequest) ([]byte, error) {
	if req.KeyName != "" {
		if req.Key != "" {
			return nil, errors.NewBadRequest("key and key_name are mutually exclusive")
		}
		material, err := h.keyDAO.Material(req.KeyName, req.KeyPassword)
		if err != nil {
			return nil, errors.NewBadRequestWithCause("key lookup failed", err)
		}
		return material, nil
	}
	key, err := hex.DecodeString(req.Key)
	if err != nil {
		return nil, errors.NewBadRequestWithCause("key is not valid hex", err)
	}
	return key, nil
}

func (h *CryptoHandler) buildConfig(req *cipherRequest, op cryptor.Operation) (cryptor.Config, error) {
	var cfg cryptor.Config
	var err error

	if cfg.Algorithm, err = cryptor.ParseAlgorithm(req.Algorithm); err != nil {
		return cfg, errors.FromCipher(err)
	}
	if cfg.Mode, err = cryptor.ParseMode(req.Mode); err != nil {
		return cfg, errors.FromCipher(err)
	}
	if cfg.Padding, err = cryptor.ParsePadding(req.Padding); err != nil {
		return cfg, errors.FromCipher(err)
	}
	if cfg.CounterOrder, err = cryptor.ParseCounterOrder(req.CounterOrder); err != nil {
		return cfg, errors.FromCipher(err)
	}
	cfg.Operation = op
	cfg.Rounds = req.Rounds

	if cfg.Key, err = h.resolveKey(req); err != nil {
		return cfg, err
	}
	if req.IV != "" {
		if cfg.IV, err = hex.DecodeString(req.IV); err != nil {
			return cfg, errors.NewBadRequestWithCause("iv is not valid hex", err)
		}
	}
	if req.Tweak != "" {
		if cfg.Tweak, err = hex.DecodeString(req.Tweak); err != nil {
			return cfg, errors.NewBadRequestWithCause("tweak is not valid hex", err)
		}
	}
	return cfg, nil
}

func (h *CryptoHandler) runCipher(w http.ResponseWriter, r *http.Request, op cryptor.Operation) {
	var req cipherRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.cfg.Limits.MaxBodyBytes)).Decode(&req); err != nil {
		RespondError(w, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		RespondError(w, errors.NewBadRequestWithCause("data is not valid base64", err))
		return
	}

	cfg, aerr := h.buildConfig(&req, op)
	if aerr != nil {
		RespondError(w, aerr)
		return
	}

	ctx := trace.WithOpTag(r.Context(), req.Algorithm+"/"+req.Mode+"/"+cfg.Operation.String())

	c, err := cryptor.New(cfg)
	if err != nil {
		RespondError(w, errors.FromCipher(err))
		return
	}
	defer c.Close()

	out, err := c.Update(data)
	if err != nil {
		RespondError(w, errors.FromCipher(err))
		return
	}
	tail, err := c.Final()
	if err != nil {
		RespondError(w, errors.FromCipher(err))
		return
	}
	out = append(out, tail...)

	log.Debug().
		Str("req_id", trace.GetRequestID(ctx)).
		Str("op", trace.GetOpTag(ctx)).
		Int("in_bytes", len(data)).
		Int("out_bytes", len(out)).
		Msg("cipher operation")

	RespondSuccess(w, map[string]interface{}{
		"data": base64.StdEncoding.EncodeToString(out),
	})
}

// Encrypt handles POST /api/encrypt
func (h *CryptoHandler) Encrypt(w http.ResponseWriter, r *http.Request) {
	h.runCipher(w, r, cryptor.Encrypt)
}

// Decrypt handles POST /api/decrypt
func (h *CryptoHandler) Decrypt(w http.ResponseWriter, r *http.Request) {
	h.runCipher(w, r, cryptor.Decrypt)
}

// Digest handles POST /api/digest
func (h *CryptoHandler) Digest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Algorithm string `json:"algorithm"`
		Data      string `json:"data"` // base64
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.cfg.Limits.MaxBodyBytes)).Decode(&req); err != nil {
		RespondError(w, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}

	alg, err := digest.Parse(req.Algorithm)
	if err != nil {
		RespondError(w, errors.NewBadRequestWithCause("unknown digest algorithm", err))
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		RespondError(w, errors.NewBadRequestWithCause("data is not valid base64", err))
		return
	}

	sum, err := digest.Sum(alg, data)
	if err != nil {
		RespondError(w, errors.NewInternalWithCause("digest failed", err))
		return
	}

	RespondSuccess(w, map[string]interface{}{
		"algorithm": alg.String(),
		"digest":    hex.EncodeToString(sum),
	})
}

// Random handles POST /api/random
func (h *CryptoHandler) Random(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Length int `json:"length"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}
	if req.Length <= 0 || req.Length > h.cfg.Limits.MaxRandomBytes {
		RespondError(w, errors.NewBadRequest("length out of range"))
		return
	}

	buf, err := random.Bytes(req.Length)
	if err != nil {
		RespondError(w, errors.NewInternalWithCause("random generation failed", err))
		return
	}

	RespondSuccess(w, map[string]interface{}{
		"data": hex.EncodeToString(buf),
	})
}

package handler

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptor-go/internal/config"
	"github.com/cryptor-go/internal/dao"
	"github.com/cryptor-go/internal/errors"
	"github.com/cryptor-go/internal/random"
)

// KeysHandler manages the stored key inventory
type KeysHandler struct {
	cfg    *config.Config
	keyDAO *dao.KeyDAO
}

// NewKeysHandler creates a new keys handler
func NewKeysHandler(cfg *config.Config, keyDAO *dao.KeyDAO) *KeysHandler {
	return &KeysHandler{cfg: cfg, keyDAO: keyDAO}
}

// keyRequest is the wire form for creating or updating a key. Exactly one
// of Material (hex) or Password must be set; password entries get a fresh
// random salt and the configured iteration count.
type keyRequest struct {
	Name      string `json:"name"`
	Algorithm string `json:"algorithm"`
	Material  string `json:"material,omitempty"`
	Password  string `json:"password,omitempty"`
	KeyLen    int    `json:"key_len,omitempty"`
}

func (h *KeysHandler) buildKey(req *keyRequest) (*dao.Key, *errors.AppError) {
	if req.Name == "" {
		return nil, errors.NewBadRequest("key name is required")
	}
	if (req.Material == "") == (req.Password == "") {
		return nil, errors.NewBadRequest("exactly one of material or password is required")
	}

	key := &dao.Key{
		Name:      req.Name,
		Algorithm: req.Algorithm,
	}

	if req.Material != "" {
		if _, err := hex.DecodeString(req.Material); err != nil {
			return nil, errors.NewBadRequestWithCause("material is not valid hex", err)
		}
		key.Material = req.Material
		return key, nil
	}

	salt, err := random.Bytes(16)
	if err != nil {
		return nil, errors.NewInternalWithCause("salt generation failed", err)
	}
	key.Salt = hex.EncodeToString(salt)
	key.Iterations = h.cfg.Derive.Iterations
	key.KeyLen = req.KeyLen
	return key, nil
}

// List handles GET /api/keys
func (h *KeysHandler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.keyDAO.List()
	if err != nil {
		RespondError(w, errors.NewInternalWithCause("key listing failed", err))
		return
	}
	RespondSuccess(w, keys)
}

// Get handles GET /api/keys/{name}
func (h *KeysHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	key, err := h.keyDAO.Get(name)
	if err != nil {
		RespondError(w, errors.NewNotFound("key not found"))
		return
	}
	key.Material = ""
	RespondSuccess(w, key)
}

// Create handles POST /api/keys
func (h *KeysHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}

	key, aerr := h.buildKey(&req)
	if aerr != nil {
		RespondError(w, aerr)
		return
	}

	if err := h.keyDAO.Create(*key); err != nil {
		if err == dao.ErrKeyExists {
			RespondError(w, errors.NewBadRequest("key already exists"))
			return
		}
		RespondError(w, errors.NewInternalWithCause("key creation failed", err))
		return
	}
	RespondSuccessMsg(w, "key created")
}

// Update handles PUT /api/keys/{name}
func (h *KeysHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, errors.NewBadRequestWithCause("invalid request body", err))
		return
	}
	req.Name = chi.URLParam(r, "name")

	key, aerr := h.buildKey(&req)
	if aerr != nil {
		RespondError(w, aerr)
		return
	}

	if err := h.keyDAO.Update(*key); err != nil {
		if err == dao.ErrKeyNotFound {
			RespondError(w, errors.NewNotFound("key not found"))
			return
		}
		RespondError(w, errors.NewInternalWithCause("key update failed", err))
		return
	}
	RespondSuccessMsg(w, "key updated")
}

// Delete handles DELETE /api/keys/{name}
func (h *KeysHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.keyDAO.Delete(name); err != nil {
		RespondError(w, errors.NewInternalWithCause("key deletion failed", err))
		return
	}
	RespondSuccessMsg(w, "key deleted")
}

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"pathway/internal/security"
	"pathway/internal/service"
)

const (
	discordAuthURL     = "https://discord.com/oauth2/authorize"
	discordTokenURL    = "https://discord.com/api/oauth2/token"
	discordIdentityURL = "https://discord.com/api/users/@me"

	stateCookieName = "oauth_state"
)

// LinkHandler signs a linked platform identity in through the Discord
// OAuth2 authorization-code flow. Accounts are linked to the identity by a
// prior password login; an unlinked identity is rejected at the callback.
type LinkHandler struct {
	auth   *service.AuthService
	tokens *security.TokenIssuer
	config *oauth2.Config
}

func NewLinkHandler(auth *service.AuthService, tokens *security.TokenIssuer, clientID, clientSecret, baseURL string) *LinkHandler {
	return &LinkHandler{
		auth:   auth,
		tokens: tokens,
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  baseURL + "/api/auth/discord/callback",
			Scopes:       []string{"identify"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  discordAuthURL,
				TokenURL: discordTokenURL,
			},
		},
	}
}

// Start redirects the browser to the Discord consent screen
func (h *LinkHandler) Start(w http.ResponseWriter, r *http.Request) {
	if h.config.ClientID == "" {
		respondWithError(w, http.StatusServiceUnavailable, "discord sign-in is not configured", nil)
		return
	}

	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.config.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// Callback validates the state, exchanges the code, resolves the Discord
// identity and opens a session for it
func (h *LinkHandler) Callback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		respondWithError(w, http.StatusBadRequest, "invalid oauth state", err)
		return
	}
	// Single use
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Value: "", Path: "/", MaxAge: -1})

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	oauthToken, err := h.config.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "code exchange failed", err)
		return
	}

	externalID, err := h.fetchIdentity(ctx, oauthToken)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "failed to fetch identity", err)
		return
	}

	if err := h.auth.LoginExternal(externalID); err != nil {
		respondServiceError(w, err)
		return
	}

	apiToken, err := h.tokens.Issue(externalID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: apiToken})
}

// fetchIdentity asks Discord for the account behind the access token
func (h *LinkHandler) fetchIdentity(ctx context.Context, token *oauth2.Token) (string, error) {
	client := h.config.Client(ctx, token)
	resp, err := client.Get(discordIdentityURL)
	if err != nil {
		return "", fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identity request returned status %d", resp.StatusCode)
	}

	var identity struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return "", fmt.Errorf("failed to decode identity: %w", err)
	}
	if identity.ID == "" {
		return "", fmt.Errorf("identity response missing id")
	}
	return identity.ID, nil
}

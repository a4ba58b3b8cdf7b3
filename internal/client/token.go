package client

import (
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type accessTokenClaims struct {
	// ContextName is the org the token was issued for.
	ContextName string `json:"context_name"`
	jwt.RegisteredClaims
}

// inspectAccessToken logs what the access token says about itself. The token is
// only verified by the VMC API, nothing here rejects it.
func inspectAccessToken(logger *zap.SugaredLogger, accessToken string, orgID string) {
	claims := &accessTokenClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(accessToken, claims); err != nil {
		logger.Debugw("access token is not a jwt", "error", err)
		return
	}

	if claims.ExpiresAt != nil {
		logger.Debugw("access token acquired", "expires_at", claims.ExpiresAt.Time, "subject", claims.Subject)
	}
	if claims.ContextName != "" && claims.ContextName != orgID {
		logger.Warnw("access token was issued for another org", "token_org", claims.ContextName, "org", orgID)
	}
}

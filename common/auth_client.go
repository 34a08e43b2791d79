package common

import "golang.org/x/oauth2"

// OAuthEndpoint is GroupMe's OAuth2 endpoint. The service uses the implicit
// flow: the browser is redirected back with the access token appended to the
// application's callback URL.
var OAuthEndpoint = oauth2.Endpoint{
	AuthURL: "https://oauth.groupme.com/oauth/authorize",
}

// AuthorizeURL builds the URL a user visits to approve an application and
// obtain an access token.
func AuthorizeURL(clientID string) string {
	cfg := &oauth2.Config{ClientID: clientID, Endpoint: OAuthEndpoint}
	return cfg.AuthCodeURL("")
}

// StaticToken wraps a long-lived access token in an oauth2.TokenSource, the
// form the API client consumes. Most callers have a developer token and use
// this directly.
func StaticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
}

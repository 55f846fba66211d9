package helpers

import "strconv"

// Redis key layout

// KeyUserStats holds the completion statistics of a user computed at generation gen.
func KeyUserStats(uid string, gen int64) string {
	return "stats:user:" + uid + ":" + strconv.FormatInt(gen, 10)
}

// KeyUserStatsGen is the counter bumped on every progress write of a user.
func KeyUserStatsGen(uid string) string {
	return "stats:gen:" + uid
}

// KeyResetTokenUsed marks a password reset token id as consumed.
func KeyResetTokenUsed(jti string) string {
	return "reset:used:" + jti
}

// KeyRateLimit is the fixed-window counter for one route and client.
func KeyRateLimit(route, client string) string {
	return "rl:" + route + ":" + client
}

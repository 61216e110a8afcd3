// Package metrics defines and registers all custom Prometheus metrics for the
// sparrow API. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at package init via promauto; the router
// exposes the default registry at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sparrow"

// SignupsTotal counts successfully registered accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts registered.",
	},
)

// TweetsCreatedTotal counts created tweets.
// Label:
//   - kind: "tweet" or "retweet"
var TweetsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tweets_created_total",
		Help:      "Total number of tweets created, by kind.",
	},
	[]string{"kind"},
)

// EngagementTotal counts like and bookmark toggles.
// Labels:
//   - target: "tweet" or "comment"
//   - action: "like", "unlike", "bookmark", "unbookmark"
var EngagementTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engagement_total",
		Help:      "Total number of engagement toggles, by target and action.",
	},
	[]string{"target", "action"},
)

// TrendingCacheTotal counts trending-hashtag cache lookups.
// Label:
//   - result: "hit" or "miss"
var TrendingCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trending_cache_total",
		Help:      "Total number of trending cache lookups, labelled by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts rejected authentication attempts at the gate.
// Label:
//   - reason: "missing_token", "invalid_token", "revoked", "user_missing", "deactivated"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth gate, by reason.",
	},
	[]string{"reason"},
)

// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opOffer = "offer"
	opCraft = "craft"

	outcomeMatch = "match"
	outcomeMiss  = "miss"
)

var (
	recipesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "craft_recipes_loaded",
			Help: "Number of recipes in the active catalog",
		},
	)

	linesRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craft_recipe_lines_rejected_total",
			Help: "Total number of recipe definition lines rejected while loading",
		},
	)

	loadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "craft_recipe_load_failures_total",
			Help: "Total number of recipe sources that could not be read",
		},
	)

	matchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "craft_match_duration_seconds",
			Help:    "Time spent matching a grid against the catalog",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		},
	)

	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "craft_requests_total",
			Help: "Total number of offer and craft queries by outcome",
		},
		[]string{"op", "outcome"},
	)
)

func observeRequest(op string, matched bool, start time.Time) {
	matchDuration.Observe(time.Since(start).Seconds())
	outcome := outcomeMiss
	if matched {
		outcome = outcomeMatch
	}
	requestsTotal.WithLabelValues(op, outcome).Inc()
}

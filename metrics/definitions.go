/*
   Copyright 2019-2020 Arboria Project

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics holds the prometheus collectors exposed by the tree engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (

	// TREE

	SmtOpenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smt_open_total",
			Help: "Number of trees opened or restored.",
		},
	)
	SmtUpdateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smt_update_total",
			Help: "Number of leaf update operations.",
		},
	)
	SmtUpdateDurationSeconds = prometheus.NewSummary(
		prometheus.SummaryOpts{
			Name: "smt_update_duration_seconds",
			Help: "Duration of the leaf update operation.",
		},
	)
	SmtHashPathTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smt_hash_path_total",
			Help: "Number of hash path retrievals.",
		},
	)
	SmtProveMembershipTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smt_prove_membership_total",
			Help: "Number of membership proofs generated.",
		},
	)

	// CACHE

	SmtCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smt_cache_hits_total",
			Help: "Number of node fetches answered by the cache.",
		},
	)
	SmtCacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smt_cache_misses_total",
			Help: "Number of node fetches that went to the store.",
		},
	)
	SmtDefaultNodeReadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smt_default_node_reads_total",
			Help: "Number of node fetches resolved by the default hash table.",
		},
	)

	collectors = []prometheus.Collector{
		SmtOpenTotal,
		SmtUpdateTotal,
		SmtUpdateDurationSeconds,
		SmtHashPathTotal,
		SmtProveMembershipTotal,
		SmtCacheHitsTotal,
		SmtCacheMissesTotal,
		SmtDefaultNodeReadsTotal,
	}
)

// Register registers every tree collector in the given registerer.
func Register(r prometheus.Registerer) {
	for _, c := range collectors {
		r.MustRegister(c)
	}
}

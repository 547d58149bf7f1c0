// Package launch provides an in-process launch orchestration engine.
//
// A launch description is a tree of actions visited depth first. Actions are
// gated by conditions evaluated at visitation time, read and write scoped
// launch configurations, and signal each other through events dispatched by
// a single run loop. Asynchronous actions, such as processes and timers,
// report completion through futures; every matched visitation yields exactly
// one ExecutionComplete event when something listens for it.
//
// Launch descriptions are usually loaded from YAML:
//
//	srv, _ := launch.New(launch.WithLaunchConfigurations(map[string]string{"robot": "r1"}))
//	_ = srv.IncludeFile("robot.yaml")
//	err := srv.Run(ctx)
//
// Sub-packages:
//
//   - runtime/execution    launch context, visitation, events and futures
//   - runtime/substitution $(var), $(env) and $(dirname) expressions
//   - runtime/condition    If, Unless, Equals and Predicate conditions
//   - service/action       group, configuration, environment, event and timer actions
//   - service/frontend     YAML entities and the action registry
package launch

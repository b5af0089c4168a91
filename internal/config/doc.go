// Package config loads and watches the pipeline configuration file
// (pacewatch.yaml).
//
// Top-level types:
//   - Config{Run, Customers, Primary, Fallback, Tracker, HTTP, Notify} — full
//     config tree parsed from YAML
//   - RunConfig — thresholds, stale-ticket and escalation settings, daemon
//     interval, artifact directory
//   - CustomerConfig — name, query_key, display_name
//   - PrimaryConfig / FallbackConfig / TrackerConfig — source endpoints with
//     secrets resolved from environment variables (secret_env, key_env,
//     token_env)
//   - HTTPConfig — connect/request timeouts, retry attempts and base delay,
//     request rate limit
//   - NotifyConfig — webhook targets (slack | teams | http), URLs resolved
//     from url_env
//
// Load(path) reads the YAML file, applies defaults, then validates required
// fields and enums. A validation failure is fatal to the run: no network
// activity may happen on a partial config.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create pattern
// used by atomic-save editors by re-adding the watch after a rename event.
package config

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

// Package logging configures structured slog logging for craftgrid binaries.
//
// All records are JSON on stderr and carry the module and version of the
// emitting binary. The level comes from the LOG_LEVEL environment variable
// (debug, info, warn/warning, error; case-insensitive) unless a caller
// passes one explicitly. Debug level adds source locations.
//
// Set the default logger early in main:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("craftd", version)
//	    slog.Info("recipes loaded", "count", n)
//	}
//
// Or with an explicit level, e.g. from a CLI flag:
//
//	logging.SetDefaultStructuredLoggerWithLevel("craftctl", version, "debug")
//
// Recipe definition diagnostics are logged as warnings:
//
//	{"time":"...","level":"WARN","msg":"recipe line rejected","module":"craftd",
//	 "version":"v0.3.0","source":"crafting.txt","line":12,"reason":"..."}
package logging

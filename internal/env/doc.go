// Package env patches single variable assignments in environment files.
//
// An environment file is a plain text file of KEY=value lines. Comments,
// blank lines and every line other than the target assignment are left
// byte-for-byte untouched.
//
// Key operations:
//
//   - ValidateKey: Reject keys outside [A-Z_][A-Z0-9_]* before touching disk
//   - PatchContent: Replace the first KEY= line's value, or append KEY=VALUE
//   - Patch: Read, patch and overwrite a file in place
//   - Diff: Line-level view of what a patch changed
//   - EffectiveValue: The value a dotenv loader will read back for a key
//
// Matching rules:
//
//   - The key is matched literally, anchored at the start of a line
//   - Leading whitespace and whitespace before '=' are preserved
//   - Only the first matching line is updated; later duplicates are kept
//   - The new value is written verbatim, it is never quoted or escaped
//
// Writes overwrite the file in place. There is no locking and no
// temp-file-and-rename, concurrent writers race and the last one wins.
package env

// Package mentions detects game-entity mentions in free-text titles and
// formats the bot reply announcing them.
//
// The service scans a title against every catalog reader's name index,
// refreshing stale readers first, and reports each detected entity with a
// confidence score. The reply formatter groups detections by confidence and
// renders the comment body a posting bot can publish as-is.
package mentions

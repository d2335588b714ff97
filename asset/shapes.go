package asset

// DefaultBalloonShape is the built-in balloon art
// The head region is collidable, the string region is decoration only
const DefaultBalloonShape = `
[head]
 .-.
(   )
 '-'
[string]
  )
  (
`

// DefaultDartShape is the built-in dart art, drawn pointing up
const DefaultDartShape = `
[body]
 ^
/|\
 |
`

package common

// CurrentUserSlot is the name of the durable slot that remembers the
// authenticated user across restarts.
const CurrentUserSlot = "currentUser"

// AppName prefixes redis channels, env variables and the REPL prompt.
const AppName = "darkworlds"

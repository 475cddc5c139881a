package app

// MinPlayersToStartRound is the floor on occupied seats before a round may
// begin. Kept centralized so tests or local runs can adjust the rule without
// touching multiple call sites; the config file may raise it, never lower it.
const MinPlayersToStartRound = 2

package registry

// builtinRegistry is the default answer-pack set. It goes through the
// same Parse path as a file-backed registry so schema validation always
// runs.
const builtinRegistry = `{
  "version": "1.2.0",
  "lastUpdated": "2026-08-14",
  "templates": [
    {
      "templateId": "league-leaders",
      "intent": "leaders",
      "requiredEntityArity": 0,
      "defaultMetrics": ["PTS"],
      "steps": [
        {
          "operation": "get_league_leaders",
          "params": {
            "metric": "{{metrics.0}}",
            "season": "{{time.season}}",
            "top_n": "{{modifiers.top_n}}"
          },
          "group": 0
        }
      ]
    },
    {
      "templateId": "player-comparison",
      "intent": "comparison",
      "entityKind": "player",
      "requiredEntityArity": 2,
      "defaultMetrics": ["PTS", "REB", "AST", "FG_PCT", "TOV"],
      "steps": [
        {
          "operation": "get_player_stats",
          "params": {
            "player_id": "{{entities.0.id}}",
            "season": "{{time.season}}"
          },
          "group": 0
        },
        {
          "operation": "get_player_stats",
          "params": {
            "player_id": "{{entities.1.id}}",
            "season": "{{time.season}}"
          },
          "group": 0
        }
      ]
    },
    {
      "templateId": "team-comparison",
      "intent": "comparison",
      "entityKind": "team",
      "requiredEntityArity": 2,
      "defaultMetrics": ["PTS", "REB", "AST", "FG_PCT", "PLUS_MINUS"],
      "steps": [
        {
          "operation": "get_team_stats",
          "params": {
            "team_id": "{{entities.0.id}}",
            "season": "{{time.season}}"
          },
          "group": 0
        },
        {
          "operation": "get_team_stats",
          "params": {
            "team_id": "{{entities.1.id}}",
            "season": "{{time.season}}"
          },
          "group": 0
        }
      ]
    },
    {
      "templateId": "player-season-profile",
      "intent": "entity_stats",
      "entityKind": "player",
      "requiredEntityArity": 1,
      "steps": [
        {
          "operation": "get_player_stats",
          "params": {
            "player_id": "{{entities.0.id}}",
            "season": "{{time.season}}"
          },
          "group": 0
        }
      ]
    },
    {
      "templateId": "team-season-profile",
      "intent": "group_stats",
      "entityKind": "team",
      "requiredEntityArity": 1,
      "steps": [
        {
          "operation": "get_team_stats",
          "params": {
            "team_id": "{{entities.0.id}}",
            "season": "{{time.season}}"
          },
          "group": 0
        },
        {
          "operation": "get_standings",
          "params": {
            "season": "{{time.season}}"
          },
          "group": 0
        }
      ]
    },
    {
      "templateId": "standings-table",
      "intent": "standings",
      "requiredEntityArity": 0,
      "steps": [
        {
          "operation": "get_standings",
          "params": {
            "season": "{{time.season}}",
            "conference": "{{modifiers.conference}}"
          },
          "group": 0
        }
      ]
    },
    {
      "templateId": "matchup-context",
      "intent": "context",
      "entityKind": "team",
      "requiredEntityArity": 2,
      "steps": [
        {
          "operation": "get_team_advanced_stats",
          "params": {
            "team_id": "{{entities.0.id}}",
            "season": "{{time.season}}"
          },
          "group": 0
        },
        {
          "operation": "get_team_advanced_stats",
          "params": {
            "team_id": "{{entities.1.id}}",
            "season": "{{time.season}}"
          },
          "group": 0
        },
        {
          "operation": "get_standings",
          "params": {
            "season": "{{time.season}}"
          },
          "group": 0
        },
        {
          "operation": "get_head_to_head",
          "params": {
            "team_a": "{{entities.0.id}}",
            "team_b": "{{entities.1.id}}",
            "season": "{{time.season}}"
          },
          "group": 1
        },
        {
          "operation": "get_recent_games",
          "params": {
            "entity_id": "{{entities.0.id}}",
            "last_n": "5"
          },
          "group": 1
        },
        {
          "operation": "get_recent_games",
          "params": {
            "entity_id": "{{entities.1.id}}",
            "last_n": "5"
          },
          "group": 1
        }
      ]
    },
    {
      "templateId": "career-trajectory-pair",
      "intent": "time_series_comparison",
      "entityKind": "player",
      "requiredEntityArity": 2,
      "steps": [
        {
          "operation": "get_player_career_stats",
          "params": {
            "player_id": "{{entities.0.id}}"
          },
          "group": 0
        },
        {
          "operation": "get_player_career_stats",
          "params": {
            "player_id": "{{entities.1.id}}"
          },
          "group": 0
        }
      ]
    },
    {
      "templateId": "career-trajectory",
      "intent": "time_series_comparison",
      "entityKind": "player",
      "requiredEntityArity": 1,
      "steps": [
        {
          "operation": "get_player_career_stats",
          "params": {
            "player_id": "{{entities.0.id}}"
          },
          "group": 0
        }
      ]
    }
  ]
}`

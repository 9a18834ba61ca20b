package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("teams").
		Where(Eq("day_of_week", 2), IsNull("deleted_at")).
		OrderBy("name").
		Limit(25).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT public_id, name FROM teams WHERE day_of_week = $1 AND deleted_at IS NULL ORDER BY name LIMIT 25"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("public_id").ToSQL(); err == nil {
		t.Fatal("expected an error without a table")
	}
}

func TestInCondition(t *testing.T) {
	query, args, err := Select("public_id").
		From("matches").
		Where(In("match_public_id", []any{"m1", "m2"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	want := "SELECT public_id FROM matches WHERE match_public_id IN ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInCondition_EmptyListMatchesNothing(t *testing.T) {
	query, _, err := Select("public_id").
		From("matches").
		Where(In("match_public_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	want := "SELECT public_id FROM matches WHERE 1=0"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("seasons").
		Columns("public_id", "name").
		Values("season-1", "2025/2026").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO seasons (public_id, name) VALUES ($1, $2) RETURNING id"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "season-1" || args[1] != "2025/2026" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RejectsRaggedRow(t *testing.T) {
	_, _, err := InsertInto("seasons").
		Columns("public_id", "name").
		Values("season-1").
		ToSQL()
	if err == nil {
		t.Fatal("expected an error for a short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("teams").
		Set("venue", "Kuzelna Harfa").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "team-zizkov")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE teams SET venue = $1, updated_at = NOW() WHERE public_id = $2"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 2 || args[0] != "Kuzelna Harfa" || args[1] != "team-zizkov" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_ExprWithArgs(t *testing.T) {
	query, args, err := Update("player_stints").
		SetExpr("leave_date", "COALESCE(leave_date, ?)", "2025-06-30").
		Where(Eq("public_id", "stint-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE player_stints SET leave_date = COALESCE(leave_date, $1) WHERE public_id = $2"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "2025-06-30" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name"`
		Ignored  string `db:"-"`
		NoTag    string
	}

	query, args, err := InsertModel("teams", row{PublicID: "team-1", Name: "Sokol"}, "")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	want := "INSERT INTO teams (public_id, name) VALUES ($1, $2)"
	if query != want {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "team-1" || args[1] != "Sokol" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

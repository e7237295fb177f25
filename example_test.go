package flickernaut_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/flickernaut"
	"github.com/aretw0/flickernaut/pkg/adapters/memory"
	"github.com/aretw0/flickernaut/pkg/core"
	"github.com/aretw0/flickernaut/pkg/notify"
)

// ExampleOpen stores an editor entry, changes it and reads it back.
func ExampleOpen() {
	// An in-memory backend keeps the example off the real settings file.
	session, err := flickernaut.Open("",
		flickernaut.WithSettings(memory.New(nil)),
		flickernaut.WithIDGenerator(core.SequentialIDs{}),
		flickernaut.WithRestarter(notify.RestarterFunc(func(context.Context) error { return nil })),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	ctx := context.Background()

	// 1. Add
	id, err := session.Store.GenerateID(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := session.Store.Add(ctx, flickernaut.Record{
		ID:      id,
		Name:    "Code",
		Enabled: true,
		Editor:  &core.Editor{Native: core.NormalizeToList("code"), SupportsFiles: true},
	}); err != nil {
		log.Fatal(err)
	}

	// 2. Update
	if _, err := session.Store.Update(ctx, flickernaut.Record{
		ID:      id,
		Name:    "Code",
		Enabled: true,
		Editor:  &core.Editor{Native: core.NormalizeToList("code  --wait "), SupportsFiles: true},
	}); err != nil {
		log.Fatal(err)
	}

	// 3. Read back
	rec, _, err := session.Store.Get(ctx, id)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: %s\n", rec.ID, core.ListToDisplay(rec.Editor.Native))
	// Output:
	// 1: code --wait
}

// Example_validate checks a candidate name against existing entries.
func Example_validate() {
	session, err := flickernaut.Open("", flickernaut.WithSettings(memory.New(nil)))
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	ctx := context.Background()
	_, _ = session.Store.Add(ctx, flickernaut.Record{
		ID: "1", Name: "Code", Enabled: true,
		Editor: &core.Editor{Native: []string{"code"}},
	})

	res := session.Store.Validate(ctx, "  code ", "2", core.FieldName)
	fmt.Println(res.IsValid, res.IsDuplicate)
	// Output:
	// false true
}

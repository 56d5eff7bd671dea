package metaclient

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sync"
	"time"

	"github.com/boltdb/bolt"
)

var (
	bucketSpaces    = []byte("spaces")
	bucketTags      = []byte("tags")
	bucketEdges     = []byte("edges")
	bucketUsers     = []byte("users")
	bucketRoles     = []byte("roles")
	bucketSnapshots = []byte("snapshots")
)

// Fake is an in-process metaclient.Client backed by boltdb: enough
// persistence to exercise Admin/DDL executors end to end without a real
// transport (spec §1 puts RPC serialization itself out of scope).
type Fake struct {
	mu      sync.Mutex
	db      *bolt.DB
	nextJob int64
}

// NewFake opens (creating if absent) a boltdb file at path as the backing
// store.
func NewFake(path string) (*Fake, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketSpaces, bucketTags, bucketEdges, bucketUsers, bucketRoles, bucketSnapshots} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Fake{db: db}, nil
}

func (f *Fake) Close() error { return f.db.Close() }

func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

func namespacedKey(space, name string) []byte {
	return []byte(space + "/" + name)
}

func (f *Fake) ToTagID(ctx context.Context, space, name string) (SchemaID, error) {
	s, err := f.GetTagSchema(ctx, space, name)
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (f *Fake) ToEdgeType(ctx context.Context, space, name string) (SchemaID, error) {
	s, err := f.GetEdgeSchema(ctx, space, name)
	if err != nil {
		return 0, err
	}
	return s.ID, nil
}

func (f *Fake) GetTagSchema(ctx context.Context, space, name string) (TagSchema, error) {
	var out TagSchema
	err := f.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketTags).Get(namespacedKey(space, name))
		if data == nil {
			return fmt.Errorf("metaclient: unknown tag %s.%s", space, name)
		}
		return decode(data, &out)
	})
	return out, err
}

func (f *Fake) GetEdgeSchema(ctx context.Context, space, name string) (EdgeSchema, error) {
	var out EdgeSchema
	err := f.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketEdges).Get(namespacedKey(space, name))
		if data == nil {
			return fmt.Errorf("metaclient: unknown edge %s.%s", space, name)
		}
		return decode(data, &out)
	})
	return out, err
}

func (f *Fake) GetAllLatestVerTagSchema(ctx context.Context, space string) ([]TagSchema, error) {
	var out []TagSchema
	err := f.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketTags).Cursor()
		prefix := []byte(space + "/")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var s TagSchema
			if err := decode(v, &s); err != nil {
				return err
			}
			out = append(out, s)
		}
		return nil
	})
	return out, err
}

func (f *Fake) GetAllLatestVerEdgeSchema(ctx context.Context, space string) ([]EdgeSchema, error) {
	var out []EdgeSchema
	err := f.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketEdges).Cursor()
		prefix := []byte(space + "/")
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			var s EdgeSchema
			if err := decode(v, &s); err != nil {
				return err
			}
			out = append(out, s)
		}
		return nil
	})
	return out, err
}

func (f *Fake) CreateSpace(ctx context.Context, desc SpaceDesc, ifNotExists bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSpaces)
		if b.Get([]byte(desc.Name)) != nil {
			if ifNotExists {
				return nil
			}
			return fmt.Errorf("metaclient: space %q already exists", desc.Name)
		}
		data, err := encode(desc)
		if err != nil {
			return err
		}
		return b.Put([]byte(desc.Name), data)
	})
}

func (f *Fake) DropSpace(ctx context.Context, name string, ifExists bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSpaces)
		if b.Get([]byte(name)) == nil {
			if ifExists {
				return nil
			}
			return fmt.Errorf("metaclient: unknown space %q", name)
		}
		return b.Delete([]byte(name))
	})
}

func (f *Fake) GetSpace(ctx context.Context, name string) (SpaceDesc, error) {
	var out SpaceDesc
	err := f.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSpaces).Get([]byte(name))
		if data == nil {
			return fmt.Errorf("metaclient: unknown space %q", name)
		}
		return decode(data, &out)
	})
	return out, err
}

func (f *Fake) ListSpaces(ctx context.Context) ([]SpaceDesc, error) {
	var out []SpaceDesc
	err := f.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSpaces).ForEach(func(k, v []byte) error {
			var s SpaceDesc
			if err := decode(v, &s); err != nil {
				return err
			}
			out = append(out, s)
			return nil
		})
	})
	return out, err
}

func (f *Fake) nextSchemaID(space string) SchemaID {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextJob++
	return SchemaID(f.nextJob)
}

func (f *Fake) CreateTag(ctx context.Context, space string, schema TagSchema, ifNotExists bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTags)
		key := namespacedKey(space, schema.Name)
		if b.Get(key) != nil {
			if ifNotExists {
				return nil
			}
			return fmt.Errorf("metaclient: tag %s.%s already exists", space, schema.Name)
		}
		if schema.ID == 0 {
			schema.ID = f.nextSchemaID(space)
		}
		data, err := encode(schema)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

func (f *Fake) AlterTag(ctx context.Context, space, name string, add []FieldDef, drop []string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTags)
		key := namespacedKey(space, name)
		data := b.Get(key)
		if data == nil {
			return fmt.Errorf("metaclient: unknown tag %s.%s", space, name)
		}
		var s TagSchema
		if err := decode(data, &s); err != nil {
			return err
		}
		s.Fields = applyFieldDelta(s.Fields, add, drop)
		out, err := encode(s)
		if err != nil {
			return err
		}
		return b.Put(key, out)
	})
}

func (f *Fake) DropTag(ctx context.Context, space, name string, ifExists bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketTags)
		key := namespacedKey(space, name)
		if b.Get(key) == nil {
			if ifExists {
				return nil
			}
			return fmt.Errorf("metaclient: unknown tag %s.%s", space, name)
		}
		return b.Delete(key)
	})
}

func (f *Fake) CreateEdge(ctx context.Context, space string, schema EdgeSchema, ifNotExists bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEdges)
		key := namespacedKey(space, schema.Name)
		if b.Get(key) != nil {
			if ifNotExists {
				return nil
			}
			return fmt.Errorf("metaclient: edge %s.%s already exists", space, schema.Name)
		}
		if schema.ID == 0 {
			schema.ID = f.nextSchemaID(space)
		}
		data, err := encode(schema)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

func (f *Fake) AlterEdge(ctx context.Context, space, name string, add []FieldDef, drop []string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEdges)
		key := namespacedKey(space, name)
		data := b.Get(key)
		if data == nil {
			return fmt.Errorf("metaclient: unknown edge %s.%s", space, name)
		}
		var s EdgeSchema
		if err := decode(data, &s); err != nil {
			return err
		}
		s.Fields = applyFieldDelta(s.Fields, add, drop)
		out, err := encode(s)
		if err != nil {
			return err
		}
		return b.Put(key, out)
	})
}

func (f *Fake) DropEdge(ctx context.Context, space, name string, ifExists bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEdges)
		key := namespacedKey(space, name)
		if b.Get(key) == nil {
			if ifExists {
				return nil
			}
			return fmt.Errorf("metaclient: unknown edge %s.%s", space, name)
		}
		return b.Delete(key)
	})
}

func applyFieldDelta(fields []FieldDef, add []FieldDef, drop []string) []FieldDef {
	dropSet := map[string]bool{}
	for _, d := range drop {
		dropSet[d] = true
	}
	out := make([]FieldDef, 0, len(fields)+len(add))
	for _, fld := range fields {
		if !dropSet[fld.Name] {
			out = append(out, fld)
		}
	}
	out = append(out, add...)
	return out
}

func (f *Fake) CreateUser(ctx context.Context, username, password string, ifNotExists bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		if b.Get([]byte(username)) != nil {
			if ifNotExists {
				return nil
			}
			return fmt.Errorf("metaclient: user %q already exists", username)
		}
		return b.Put([]byte(username), []byte(password))
	})
}

func (f *Fake) DropUser(ctx context.Context, username string, ifExists bool) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		if b.Get([]byte(username)) == nil {
			if ifExists {
				return nil
			}
			return fmt.Errorf("metaclient: unknown user %q", username)
		}
		return b.Delete([]byte(username))
	})
}

func (f *Fake) ChangePassword(ctx context.Context, username, newPassword string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		if b.Get([]byte(username)) == nil {
			return fmt.Errorf("metaclient: unknown user %q", username)
		}
		return b.Put([]byte(username), []byte(newPassword))
	})
}

func (f *Fake) GrantRole(ctx context.Context, username, space, role string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRoles)
		key := []byte(username + "/" + space)
		return b.Put(key, []byte(role))
	})
}

func (f *Fake) RevokeRole(ctx context.Context, username, space, role string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRoles).Delete([]byte(username + "/" + space))
	})
}

func (f *Fake) ListUsers(ctx context.Context) ([]UserDesc, error) {
	var out []UserDesc
	err := f.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketUsers).ForEach(func(k, v []byte) error {
			out = append(out, UserDesc{Username: string(k)})
			return nil
		})
	})
	return out, err
}

func (f *Fake) ListRoles(ctx context.Context, space string) ([]RoleDesc, error) {
	var out []RoleDesc
	suffix := "/" + space
	err := f.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRoles).ForEach(func(k, v []byte) error {
			key := string(k)
			if len(key) > len(suffix) && key[len(key)-len(suffix):] == suffix {
				out = append(out, RoleDesc{Username: key[:len(key)-len(suffix)], SpaceName: space, Role: string(v)})
			}
			return nil
		})
	})
	return out, err
}

func (f *Fake) CreateSnapshot(ctx context.Context, space string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		name := fmt.Sprintf("SNAPSHOT_%s_%d", space, time.Now().UnixNano())
		data, err := encode(SnapshotDesc{Name: name, Status: "VALID"})
		if err != nil {
			return err
		}
		return b.Put([]byte(name), data)
	})
}

func (f *Fake) DropSnapshot(ctx context.Context, name string) error {
	return f.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Delete([]byte(name))
	})
}

func (f *Fake) ListSnapshots(ctx context.Context) ([]SnapshotDesc, error) {
	var out []SnapshotDesc
	err := f.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).ForEach(func(k, v []byte) error {
			var s SnapshotDesc
			if err := decode(v, &s); err != nil {
				return err
			}
			out = append(out, s)
			return nil
		})
	})
	return out, err
}

func (f *Fake) Balance(ctx context.Context, kind string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextJob++
	return f.nextJob, nil
}

func (f *Fake) ShowBalance(ctx context.Context, jobID int64) (BalanceJob, error) {
	return BalanceJob{JobID: jobID, Status: "SUCCEEDED"}, nil
}

var _ Client = (*Fake)(nil)

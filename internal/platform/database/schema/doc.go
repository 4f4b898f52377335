// Copyright (c) 2026 Staynest. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package schema holds the table and column names of the Postgres schema.

Stores build their SQL from these definitions instead of string literals so
that a column rename in a migration breaks in one place.

Tables:

  - users.account: directory records (email, optional password hash).
  - users.provideraccount: federated provider links.
  - users.session: refresh-token sessions.
  - listing.listing: the read model for browse.
*/
package schema

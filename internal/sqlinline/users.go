package sqlinline

// QInsertUser registers a user. The unique index on email makes the
// duplicate check atomic: a conflicting insert returns zero rows.
const QInsertUser = `--sql 3b84cd20-e6c0-4587-ac54-159bfc5cf54c
insert into users (id, name, email, photo, blood_group, district, upazila, role, status, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, $5::text, $6::text, $7::text, $8::text, now())
on conflict (email) do nothing
returning id;
`

const QSelectUserByEmail = `--sql d4c501da-33eb-4338-b052-120975be9340
select id, name, email, photo, blood_group, district, upazila, role, status, created_at
from users
where email = $1::text
limit 1;
`

const QSelectUserByID = `--sql d0c53e08-e704-4d25-8847-3cd516ca9cf5
select id, name, email, photo, blood_group, district, upazila, role, status, created_at
from users
where id = $1::uuid
limit 1;
`

// QListUsers pages the directory with optional status/email filters. The
// window count keeps list and total in one round-trip.
const QListUsers = `--sql ae5b5971-c734-4967-9142-8ee081459948
select id, name, email, photo, blood_group, district, upazila, role, status, created_at,
       count(*) over() as total
from users
where ($1::text = '' or status = $1::text)
  and ($2::text = '' or email = $2::text)
order by created_at desc, id
limit $3::int offset $4::int;
`

// QUpdateUserProfile patches profile fields only. Role and status are
// deliberately absent; their dedicated admin endpoints are the sole mutators.
const QUpdateUserProfile = `--sql 8a4a5732-74d6-4606-ad51-0ece2afd17fd
update users
set name        = coalesce($2::text, name),
    photo       = coalesce($3::text, photo),
    blood_group = coalesce($4::text, blood_group),
    district    = coalesce($5::text, district),
    upazila     = coalesce($6::text, upazila)
where id = $1::uuid
returning id;
`

const QUpdateUserStatus = `--sql 02c606a0-e19c-420b-92e0-4a609c462dd3
update users
set status = $2::text
where id = $1::uuid
returning id;
`

const QUpdateUserRole = `--sql dcd65890-b8b1-47b8-b5ce-d32ea0169771
update users
set role = $2::text
where id = $1::uuid
returning id;
`

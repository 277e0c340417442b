package sqlinline

const QInsertRequest = `--sql ed7651a2-2534-4d18-b4da-f9672ca39f14
insert into donation_requests
    (id, requester_name, requester_email, recipient_name, district, upazila,
     hospital, address, blood_group, donation_date, donation_time, message,
     donation_status, donor_info, created_at)
values
    (gen_random_uuid(), $1::text, $2::text, $3::text, $4::text, $5::text,
     $6::text, $7::text, $8::text, $9::text, $10::text, $11::text,
     'pending', null, now())
returning id;
`

const requestColumns = `id, requester_name, requester_email, recipient_name, district, upazila,
       hospital, address, blood_group, donation_date, donation_time, message,
       donation_status, donor_info, created_at`

const QSelectRequestByID = `--sql 06bc886d-14e8-4434-aadf-fba826f7edb0
select ` + requestColumns + `
from donation_requests
where id = $1::uuid
limit 1;
`

const QRecentRequestsByEmail = `--sql ce739827-cc16-413e-9455-211c3a3dd958
select ` + requestColumns + `
from donation_requests
where requester_email = $1::text
order by created_at desc, id
limit 3;
`

const QListRequests = `--sql b3cec460-3a80-44b2-8443-f991374312a2
select ` + requestColumns + `,
       count(*) over() as total
from donation_requests
where ($1::text = '' or requester_email = $1::text)
  and ($2::text = '' or donation_status = $2::text)
order by created_at desc, id
limit $3::int offset $4::int;
`

// QSearchPendingRequests serves the public donor search. The pending
// constraint is fixed in the statement, not caller-supplied.
const QSearchPendingRequests = `--sql 8f77c10b-9b14-4802-aa2e-70d5c93004aa
select ` + requestColumns + `
from donation_requests
where donation_status = 'pending'
  and ($1::text = '' or blood_group = $1::text)
  and ($2::text = '' or district = $2::text)
  and ($3::text = '' or upazila = $3::text)
order by created_at desc, id;
`

// QConfirmDonation appends the donor entry and moves the request to
// inprogress in one statement, so concurrent confirmations cannot lose an
// append. The source-state guard comes from the transition table.
const QConfirmDonation = `--sql d62dc144-576b-43ff-b871-34a906599cf2
update donation_requests
set donation_status = 'inprogress',
    donor_info = coalesce(donor_info, '[]'::jsonb) || $2::jsonb
where id = $1::uuid
  and donation_status = any($3::text[])
returning id;
`

// QSetRequestStatus performs a guarded transition: the update only lands
// when the current status is a legal source for the target.
const QSetRequestStatus = `--sql 4bd3e10d-d8a8-4294-ba95-3542c3b331b3
update donation_requests
set donation_status = $2::text
where id = $1::uuid
  and donation_status = any($3::text[])
returning id;
`

const QSelectRequestStatus = `--sql f389fc7e-dbe6-454e-a064-2143e2620ae3
select donation_status
from donation_requests
where id = $1::uuid
limit 1;
`

// QUpdateRequest patches recipient and schedule fields. donation_status and
// donor_info have no parameters here; the confirm and status endpoints are
// the only paths that touch the state machine.
const QUpdateRequest = `--sql 110701a2-3cdf-455d-ae94-19d19c652bad
update donation_requests
set requester_name = coalesce($2::text, requester_name),
    recipient_name = coalesce($3::text, recipient_name),
    district       = coalesce($4::text, district),
    upazila        = coalesce($5::text, upazila),
    hospital       = coalesce($6::text, hospital),
    address        = coalesce($7::text, address),
    blood_group    = coalesce($8::text, blood_group),
    donation_date  = coalesce($9::text, donation_date),
    donation_time  = coalesce($10::text, donation_time),
    message        = coalesce($11::text, message)
where id = $1::uuid
returning id;
`

const QDeleteRequest = `--sql 0d3d1303-3a90-4824-92f0-4deb673a373f
delete from donation_requests
where id = $1::uuid
returning id;
`
